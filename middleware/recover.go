package middleware

import (
	"fmt"
	"net/http"

	"github.com/mnehpets/learnspring/endpoint"
	"go.uber.org/zap"
)

// RecoverProcessor turns a panic in a later processor or the endpoint into a
// 500 response.
type RecoverProcessor struct {
	logger *zap.Logger
}

// NewRecoverProcessor returns a RecoverProcessor. A nil logger discards the
// panic report.
func NewRecoverProcessor(logger *zap.Logger) *RecoverProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecoverProcessor{logger: logger}
}

// Process implements endpoint.Processor.
func (p *RecoverProcessor) Process(w http.ResponseWriter, r *http.Request, next endpoint.NextFunc) (err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if rec == http.ErrAbortHandler {
			panic(rec)
		}
		p.logger.Error("panic serving request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Any("panic", rec),
			zap.Stack("stack"),
		)
		err = endpoint.Error(http.StatusInternalServerError, "", fmt.Errorf("panic: %v", rec))
	}()
	return next(w, r)
}

var _ endpoint.Processor = (*RecoverProcessor)(nil)
