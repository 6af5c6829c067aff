package handler

import (
	"github.com/labstack/echo/v4"

	"loot-currency/internal/modules/currency/dto"
	"loot-currency/internal/modules/currency/service"
	"loot-currency/internal/pkg/log"
	"loot-currency/internal/pkg/response"
	"loot-currency/internal/pkg/xerrors"
)

// CurrencyHandler 货币掉落 HTTP 处理器
type CurrencyHandler struct {
	currencyService *service.CurrencyService
	respWriter      response.Writer
	logger          log.Logger
}

// NewCurrencyHandler 创建货币掉落处理器
func NewCurrencyHandler(currencyService *service.CurrencyService, respWriter response.Writer, logger log.Logger) *CurrencyHandler {
	return &CurrencyHandler{
		currencyService: currencyService,
		respWriter:      respWriter,
		logger:          logger,
	}
}

// GenerateCurrency 生成随机货币掉落
// @Summary 生成货币掉落
// @Description 根据玩家等级和队伍人数随机生成金/银/铜币，reduce=true 时按 10 进位合并
// @Tags 货币
// @Produce json
// @Param level query int true "玩家等级 (1-20)" minimum(1) maximum(20)
// @Param members query int true "队伍人数 (1-6)" minimum(1) maximum(6)
// @Param reduce query string false "是否进位合并，只有 true 生效" Enums(true, false)
// @Success 200 {object} dto.GenerateCurrencyResponse "生成成功"
// @Failure 400 {object} response.ErrorBody "参数错误"
// @Failure 500 {object} response.ErrorBody "服务器内部错误"
// @Router /generate_currency [get]
func (h *CurrencyHandler) GenerateCurrency(c echo.Context) error {
	ctx := c.Request().Context()
	level := c.QueryParam("level")
	members := c.QueryParam("members")
	reduce := c.QueryParam("reduce")

	h.logger.InfoContext(ctx, "Received currency request",
		log.String("player_level", level),
		log.String("party_members", members),
		log.String("reduce", reduce),
	)

	req, err := h.currencyService.ValidateQuery(level, members, reduce)
	if err != nil {
		h.logValidationFailure(c, err)
		return response.EchoError(c, h.respWriter, err)
	}

	coins := h.currencyService.Generate(ctx, req)
	return response.EchoOK(c, h.respWriter, dto.GenerateCurrencyResponse{Coins: coins})
}

// Health 健康检查
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *CurrencyHandler) Health(c echo.Context) error {
	return response.EchoOK(c, h.respWriter, dto.HealthResponse{Status: "ok"})
}

func (h *CurrencyHandler) logValidationFailure(c echo.Context, err error) {
	appErr, ok := xerrors.As(err)
	if !ok {
		h.logger.Error("Unexpected validation error", err)
		return
	}

	var field, value any
	if appErr.Context != nil {
		field = appErr.Context.Metadata["field"]
		value = appErr.Context.Metadata["value"]
	}
	h.logger.ErrorContext(c.Request().Context(), appErr.Message,
		log.Any("field", field),
		log.Any("value", value),
		log.Int("code", appErr.Code.ToInt()),
	)
}
