package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/events"
	"github.com/zizouhuweidi/trivia/internal/metrics"
	"github.com/zizouhuweidi/trivia/internal/ratelimit"
	"github.com/zizouhuweidi/trivia/internal/service"
	ws "github.com/zizouhuweidi/trivia/internal/websocket"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the HTTP layer is built from. Hub,
// Pinger, Metrics and Limiter are optional.
type Dependencies struct {
	Categories domain.CategoryRepository
	Questions  domain.QuestionRepository
	Events     domain.EventPublisher
	Logger     *zap.Logger

	Hub     *ws.Hub
	Pinger  Pinger
	Metrics *metrics.Metrics
	Limiter *ratelimit.Limiter
}

// NewRouter builds the echo instance serving the trivia API
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(deps.Logger)

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Logger))
	if deps.Metrics != nil {
		e.Use(deps.Metrics.Middleware())
	}
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	var limit []echo.MiddlewareFunc
	if deps.Limiter != nil {
		limit = append(limit, ratelimit.Middleware(deps.Limiter, deps.Logger))
	}

	publisher := deps.Events
	if publisher == nil {
		publisher = events.Discard{}
	}

	categoryHandler := NewCategoryHandler(deps.Categories, deps.Questions)
	questionHandler := NewQuestionHandler(deps.Questions, deps.Categories, publisher, deps.Logger)
	quizHandler := NewQuizHandler(service.NewQuizService(deps.Questions))
	healthHandler := NewHealthHandler(deps.Pinger)

	// Routes
	e.GET("/categories", categoryHandler.List)
	e.GET("/categories/:category_id/questions", categoryHandler.Questions)

	e.GET("/questions", questionHandler.List)
	e.POST("/questions", questionHandler.Post, limit...)
	e.DELETE("/questions/:question_id", questionHandler.Delete, limit...)

	e.POST("/quizzes", quizHandler.Next)
	e.POST("/quizzes/answers", quizHandler.CheckAnswer)

	e.GET("/health", healthHandler.Health)
	if deps.Metrics != nil {
		e.GET("/metrics", deps.Metrics.Handler())
	}
	if deps.Hub != nil {
		e.GET("/ws", NewWebSocketHandler(deps.Hub).HandleWebSocket)
	}

	return e
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Status >= http.StatusInternalServerError {
				logger.Error("request", fields...)
			} else {
				logger.Info("request", fields...)
			}
			return nil
		},
	})
}
