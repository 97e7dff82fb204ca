package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/mnehpets/learnspring/endpoint"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AccessLogProcessor writes one structured log entry per request once the
// response has been produced.
//
// Requests answered with a 5xx status are logged at Error level, all others
// at Info.
type AccessLogProcessor struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewAccessLogProcessor returns an AccessLogProcessor logging to logger.
// A nil logger discards entries.
func NewAccessLogProcessor(logger *zap.Logger) *AccessLogProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccessLogProcessor{logger: logger, now: time.Now}
}

// Process implements endpoint.Processor.
func (p *AccessLogProcessor) Process(w http.ResponseWriter, r *http.Request, next endpoint.NextFunc) error {
	start := p.now()
	rec := &statusRecorder{ResponseWriter: w}

	err := next(rec, r)

	status := rec.status
	if err != nil {
		// The handler writes the error response after the chain unwinds.
		status = errorStatus(err)
	} else if status == 0 {
		status = http.StatusOK
	}

	level := zapcore.InfoLevel
	if status >= http.StatusInternalServerError {
		level = zapcore.ErrorLevel
	}
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Int64("bytes", rec.written),
		zap.Duration("duration", p.now().Sub(start)),
		zap.String("remote", r.RemoteAddr),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if ce := p.logger.Check(level, "request"); ce != nil {
		ce.Write(fields...)
	}
	return err
}

func errorStatus(err error) int {
	var ee *endpoint.EndpointError
	if errors.As(err, &ee) && ee != nil && ee.Status >= 100 {
		return ee.Status
	}
	return http.StatusInternalServerError
}

// statusRecorder captures the status code and body size written through it.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.written += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

var _ endpoint.Processor = (*AccessLogProcessor)(nil)
