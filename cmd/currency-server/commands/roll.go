package commands

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"

	"loot-currency/internal/modules/currency/dto"
	"loot-currency/internal/modules/currency/service"
	"loot-currency/internal/pkg/log"
)

func rollCmd() *cobra.Command {
	var (
		level   int
		members int
		reduce  bool
	)

	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Generate one coin bundle and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := service.NewCurrencyService(service.Dependencies{
				Logger: log.Discard(),
			})

			req, err := svc.ValidateQuery(strconv.Itoa(level), strconv.Itoa(members), strconv.FormatBool(reduce))
			if err != nil {
				return err
			}

			coins := svc.Generate(cmd.Context(), req)
			enc := json.NewEncoder(cmd.OutOrStdout())
			return enc.Encode(dto.GenerateCurrencyResponse{Coins: coins})
		},
	}

	cmd.Flags().IntVar(&level, "level", 1, "player level (1-20)")
	cmd.Flags().IntVar(&members, "members", 1, "party members (1-6)")
	cmd.Flags().BoolVar(&reduce, "reduce", false, "consolidate copper into silver and silver into gold")
	return cmd
}
