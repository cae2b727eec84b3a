package cmd

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	authclient "github.com/vibast-solutions/lib-go-auth/client"
	authmiddleware "github.com/vibast-solutions/lib-go-auth/middleware"
	authlibservice "github.com/vibast-solutions/lib-go-auth/service"
	"github.com/vibast-solutions/ms-go-memberships/app/container"
	"github.com/vibast-solutions/ms-go-memberships/app/controller"
	grpcserver "github.com/vibast-solutions/ms-go-memberships/app/grpc"
	"github.com/vibast-solutions/ms-go-memberships/app/metrics"
	"github.com/vibast-solutions/ms-go-memberships/app/service"
	"github.com/vibast-solutions/ms-go-memberships/app/types"
	"github.com/vibast-solutions/ms-go-memberships/config"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	Long:  "Start both HTTP (Echo) and gRPC servers for the memberships service.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type controllers struct {
	catalog       *controller.CatalogController
	members       *controller.MemberController
	subscriptions *controller.SubscriptionController
	tickets       *controller.TicketController
	redemptions   *controller.RedemptionController
	payments      *controller.PaymentController
}

func newControllers(services *container.Services, clock service.Clock) *controllers {
	return &controllers{
		catalog:       controller.NewCatalogController(services.Catalog, clock),
		members:       controller.NewMemberController(services.Members, services.Ledger, clock),
		subscriptions: controller.NewSubscriptionController(services.Ledger, clock),
		tickets:       controller.NewTicketController(services.Tickets, clock),
		redemptions:   controller.NewRedemptionController(services.Redemptions, clock),
		payments:      controller.NewPaymentController(services.Payments, clock),
	}
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	db, closeDB := mustOpenDatabase(cfg)
	defer closeDB()

	ctx := context.Background()
	shutdownTracing := setupTracing(ctx, cfg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	services, closeServices := buildServices(ctx, cfg, db, registry)
	defer closeServices()

	clock := service.SystemClock{}
	grpcMembershipsServer := grpcserver.NewServer(services, clock)

	authGRPCClient, err := authclient.NewGRPCClientFromAddr(ctx, cfg.InternalEndpoints.AuthGRPCAddr)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize auth gRPC client")
	}
	defer authGRPCClient.Close()
	internalAuthService := authlibservice.NewInternalAuthService(authGRPCClient)
	echoInternalAuthMiddleware := authmiddleware.NewEchoInternalAuthMiddleware(internalAuthService)
	grpcInternalAuthMiddleware := authmiddleware.NewGRPCInternalAuthMiddleware(internalAuthService)

	e := setupHTTPServer(newControllers(services, clock), registry, echoInternalAuthMiddleware, cfg.App.ServiceName)
	grpcSrv, lis := setupGRPCServer(cfg, grpcMembershipsServer, metrics.NewRPCMetrics(registry), grpcInternalAuthMiddleware, cfg.App.ServiceName)

	go func() {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	go func() {
		logrus.WithField("addr", lis.Addr().String()).Info("Starting gRPC server")
		if err := grpcSrv.Serve(lis); err != nil {
			logrus.WithError(err).Fatal("gRPC server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown error")
	}
	grpcSrv.GracefulStop()
	shutdownTracing(shutdownCtx)

	logrus.Info("Server stopped")
}

func setupHTTPServer(
	c *controllers,
	registry *prometheus.Registry,
	internalAuthMiddleware *authmiddleware.EchoInternalAuthMiddleware,
	appServiceName string,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
				"request_id": v.RequestID,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string {
			return fmt.Sprintf("rest-%s", uuid.New().String())
		},
	}))

	e.GET("/health", c.catalog.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))

	api := e.Group("", internalAuthMiddleware.RequireInternalAccess(appServiceName))
	registerRoutes(api, c)

	return e
}

func registerRoutes(api *echo.Group, c *controllers) {
	api.GET("/stats", c.catalog.Stats)

	plans := api.Group("/plans")
	plans.GET("", c.catalog.ListPlans)
	plans.POST("", c.catalog.CreatePlan)
	plans.GET("/:id", c.catalog.GetPlan)
	plans.GET("/:id/benefits", c.catalog.ListPlanBenefits)

	benefits := api.Group("/benefits")
	benefits.GET("", c.catalog.FindBenefitByCode)
	benefits.POST("", c.catalog.CreateBenefit)
	benefits.GET("/:id", c.catalog.GetBenefit)
	benefits.GET("/:id/availability", c.redemptions.Availability)
	benefits.POST("/:id/redeem", c.redemptions.Redeem)

	eventos := api.Group("/eventos")
	eventos.GET("", c.catalog.ListUpcomingEventos)
	eventos.POST("", c.catalog.CreateEvento)
	eventos.GET("/:id", c.catalog.GetEvento)
	eventos.POST("/:id/tickets", c.tickets.Purchase)

	members := api.Group("/members")
	members.POST("", c.members.Register)
	members.POST("/signup", c.members.Signup)
	members.POST("/authenticate", c.members.Authenticate)
	members.GET("/:id", c.members.GetMember)
	members.PATCH("/:id", c.members.UpdateMember)
	members.DELETE("/:id", c.members.DeleteMember)
	members.GET("/:id/subscription", c.members.ActiveSubscription)
	members.GET("/:id/subscriptions", c.subscriptions.ListSubscriptions)
	members.GET("/:id/tickets", c.tickets.ListTickets)
	members.GET("/:id/redemptions", c.redemptions.ListRedemptions)
	members.GET("/:id/payments", c.payments.ListPayments)

	subscriptions := api.Group("/subscriptions")
	subscriptions.POST("", c.subscriptions.Subscribe)
	subscriptions.GET("/:id", c.subscriptions.GetSubscription)
	subscriptions.POST("/:id/renew", c.subscriptions.Renew)
	subscriptions.POST("/:id/change-plan", c.subscriptions.ChangePlan)
	subscriptions.POST("/:id/cancel", c.subscriptions.Cancel)

	tickets := api.Group("/tickets")
	tickets.POST("/validate", c.tickets.ValidateCode)
	tickets.GET("/:id", c.tickets.GetTicket)
	tickets.POST("/:id/validate", c.tickets.Validate)

	redemptions := api.Group("/redemptions")
	redemptions.POST("/consume", c.redemptions.ConsumeCode)
	redemptions.GET("/:id", c.redemptions.GetRedemption)
	redemptions.POST("/:id/consume", c.redemptions.Consume)

	payments := api.Group("/payments")
	payments.POST("", c.payments.CreatePayment)
	payments.GET("/:id", c.payments.GetPayment)
	payments.POST("/:id/process", c.payments.Process)
	payments.POST("/:id/fail", c.payments.Fail)
	payments.POST("/:id/refund", c.payments.Refund)
}

func setupGRPCServer(
	cfg *config.Config,
	membershipsServer *grpcserver.Server,
	recorder service.Recorder,
	internalAuthMiddleware *authmiddleware.GRPCInternalAuthMiddleware,
	appServiceName string,
) (*grpc.Server, net.Listener) {
	grpcAddr := net.JoinHostPort(cfg.GRPC.Host, cfg.GRPC.Port)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to listen on gRPC port")
	}

	grpcSrv := grpc.NewServer(
		grpc.ForceServerCodec(types.JSONCodec{}),
		grpc.ChainUnaryInterceptor(
			grpcserver.RecoveryInterceptor(),
			grpcserver.RequestIDInterceptor(),
			grpcserver.LoggingInterceptor(),
			grpcserver.MetricsInterceptor(recorder),
			internalAuthMiddleware.UnaryRequireInternalAccess(appServiceName),
		),
	)
	types.RegisterMembershipsServiceServer(grpcSrv, membershipsServer)

	return grpcSrv, lis
}
