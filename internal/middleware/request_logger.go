package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const CtxLoggerKey = "logger" // *zap.Logger

// 1リクエスト1行のアクセスログ。
// request_id付きのloggerをcontextに置く（handlerのエラーログ用）
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			reqLog := log.With(zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)))
			c.Set(CtxLoggerKey, reqLog)

			err := next(c)
			if err != nil {
				//echoのエラーハンドラに書かせてからステータスを読む
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
			}

			switch {
			case res.Status >= 500:
				reqLog.Error("HTTP request", fields...)
			case res.Status >= 400:
				reqLog.Warn("HTTP request", fields...)
			default:
				reqLog.Info("HTTP request", fields...)
			}
			return nil
		}
	}
}

// なければNop
func LoggerFrom(c echo.Context) *zap.Logger {
	if l, ok := c.Get(CtxLoggerKey).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}
