package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"loot-currency/internal/modules/currency/dto"
	"loot-currency/internal/pkg/log"
	"loot-currency/internal/pkg/metrics"
	"loot-currency/internal/pkg/notify"
	"loot-currency/internal/pkg/trace"
	"loot-currency/internal/pkg/validator"
	"loot-currency/internal/pkg/xerrors"
)

// Dependencies CurrencyService 的依赖，零值字段使用默认实现
type Dependencies struct {
	Generator *Generator
	Validator *validator.CustomValidator
	Publisher notify.Publisher
	Metrics   *metrics.LootMetrics
	Logger    log.Logger
	Subject   string
}

// CurrencyService 货币掉落服务
type CurrencyService struct {
	generator *Generator
	validator *validator.CustomValidator
	publisher notify.Publisher
	metrics   *metrics.LootMetrics
	logger    log.Logger
	subject   string
}

// NewCurrencyService 创建货币掉落服务
func NewCurrencyService(deps Dependencies) *CurrencyService {
	if deps.Generator == nil {
		deps.Generator = NewGenerator(nil)
	}
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}
	if deps.Publisher == nil {
		deps.Publisher = notify.NopPublisher{}
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.DefaultLootMetrics
	}
	if deps.Logger == nil {
		deps.Logger = log.GetLogger()
	}
	if deps.Subject == "" {
		deps.Subject = notify.SubjectLootCurrencyGenerated
	}

	return &CurrencyService{
		generator: deps.Generator,
		validator: deps.Validator,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
		subject:   deps.Subject,
	}
}

// ValidateQuery 解析并校验原始查询参数
// 先校验等级再校验人数，第一个失败即返回
func (s *CurrencyService) ValidateQuery(level, members, reduce string) (dto.LootRequest, error) {
	var req dto.LootRequest

	lv, err := parseInt(level)
	if err == nil {
		req.Level = lv
		err = s.validator.ValidateFields(&req, "Level")
	}
	if err != nil {
		s.metrics.RecordValidationFailure("level")
		return dto.LootRequest{}, xerrors.NewInvalidLevelError(level).
			WithMetadata("reason", reasonOf(err))
	}

	n, err := parseInt(members)
	if err == nil {
		req.Members = n
		err = s.validator.ValidateFields(&req, "Members")
	}
	if err != nil {
		s.metrics.RecordValidationFailure("members")
		return dto.LootRequest{}, xerrors.NewInvalidPartySizeError(members).
			WithMetadata("reason", reasonOf(err))
	}

	req.Reduce = reduce == "true"
	return req, nil
}

// Generate 生成一份掉落，日志/指标/事件发布都不会让调用失败
func (s *CurrencyService) Generate(ctx context.Context, req dto.LootRequest) dto.CoinBundle {
	coins := s.generator.Generate(req.Level, req.Members, req.Reduce)

	s.logger.InfoContext(ctx, "Generated currency",
		log.Int("player_level", req.Level),
		log.Int("party_members", req.Members),
		log.Bool("reduce", req.Reduce),
		log.Int("gp", coins.GP),
		log.Int("sp", coins.SP),
		log.Int("cp", coins.CP),
	)
	s.metrics.RecordLoot(req.Reduce, coins.GP, coins.SP, coins.CP)

	event := dto.LootGeneratedEvent{
		EventID:     uuid.NewString(),
		TraceID:     trace.GetTraceID(ctx),
		Level:       req.Level,
		Members:     req.Members,
		Reduce:      req.Reduce,
		Coins:       coins,
		GeneratedAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, s.subject, event); err != nil {
		s.metrics.RecordPublishFailure()
		appErr := xerrors.Wrap(err, xerrors.CodeMessageQueueError, xerrors.CodeMessageQueueError.Message()).
			WithService("currency", "publish_loot_event").
			WithMetadata("subject", s.subject)
		s.logger.WarnContext(ctx, "发布掉落事件失败", log.Any("app_error", appErr))
	}

	return coins
}

// parseInt 读取开头的十进制整数（可带符号），忽略后面的字符
// "5.5" 和 "5abc" 都得到 5，没有数字时报错
func parseInt(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, fmt.Errorf("parse %q: no leading digits", raw)
	}
	return strconv.Atoi(s[:end])
}

func reasonOf(err error) string {
	if msg := validator.TranslateValidationError(err); msg != "" {
		return msg
	}
	return err.Error()
}
