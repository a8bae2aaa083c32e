package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/example/macrocam/internal/logging"
	"github.com/example/macrocam/internal/nutrition"
)

// AnalysisUseCase turns an uploaded meal photo into the model's macro estimate.
// It holds no per-request state and is safe for concurrent use.
type AnalysisUseCase struct {
	analyzer nutrition.Analyzer
	prompt   string
	logger   *zap.Logger
}

// NewAnalysisUseCase constructs a new use case instance.
func NewAnalysisUseCase(analyzer nutrition.Analyzer, logger *zap.Logger) *AnalysisUseCase {
	return &AnalysisUseCase{
		analyzer: analyzer,
		prompt:   nutrition.AnalysisPrompt,
		logger:   logger.Named("analysis_usecase"),
	}
}

// AnalyzeMeal encodes the image, issues exactly one inference call and parses
// the returned text as JSON. Nothing about the image is validated.
func (uc *AnalysisUseCase) AnalyzeMeal(ctx context.Context, image []byte) (*nutrition.Analysis, error) {
	requestID, _ := logging.RequestIDFromContext(ctx)
	opLogger := logging.WithOperation(uc.logger, "usecase.analyze_meal", requestID)

	mediaType := nutrition.DetectMediaType(image)
	imageURL := nutrition.DataURI(mediaType, image)

	started := time.Now()
	text, err := uc.analyzer.Analyze(ctx, uc.prompt, imageURL)
	if err != nil {
		wrapped := logging.NewOperationError("usecase.analyze_meal", requestID, err)
		opLogger.Error("inference call failed", zap.Error(err), zap.Duration("latency", time.Since(started)))
		return nil, wrapped
	}

	analysis, err := nutrition.ParseAnalysis(text)
	if err != nil {
		wrapped := logging.NewOperationError("usecase.parse_analysis", requestID, err)
		opLogger.Error("model returned invalid json", zap.Error(err), zap.Int("response_bytes", len(text)))
		return nil, wrapped
	}

	macros := analysis.Macros()
	fields := []zap.Field{
		zap.Int("image_bytes", len(image)),
		zap.String("media_type", mediaType),
		zap.Duration("latency", time.Since(started)),
		zap.Int("calories", macros.Calories),
		zap.Int("foods", len(macros.Foods)),
	}
	if macros.Confidence != nil {
		fields = append(fields, zap.String("confidence", *macros.Confidence))
	}
	opLogger.Info("meal analyzed", fields...)

	return analysis, nil
}
