// Command agentpay runs the pay-per-use AI agent marketplace server.
//
// Configuration is environment driven (a .env file is honored when
// present). Payments are ENFORCED by default; set PAYMENT_MODE=open to
// run without a facilitator, e.g. for local development.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"

	"github.com/agentpay/agentpay/agents"
	"github.com/agentpay/agentpay/api"
	"github.com/agentpay/agentpay/catalog"
	"github.com/agentpay/agentpay/gateway"
	"github.com/agentpay/agentpay/internal/config"
	"github.com/agentpay/agentpay/ledger"
	ledgersqlite "github.com/agentpay/agentpay/ledger/sqlite"
	"github.com/agentpay/agentpay/llm"
	"github.com/agentpay/agentpay/observe"
	observeotel "github.com/agentpay/agentpay/observe/otel"
	"github.com/agentpay/agentpay/payment"
	paymentredis "github.com/agentpay/agentpay/payment/redis"
	"github.com/agentpay/agentpay/providers/openai"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}

	addr := config.GetEnv("ADDR", ":"+config.GetEnv("PORT", "4000"))
	network := config.GetEnv("NETWORK", "testnet")
	payTo := config.GetEnv("SERVER_ADDRESS", "")
	openMode := strings.EqualFold(config.GetEnv("PAYMENT_MODE", "enforced"), "open")

	cat, err := loadCatalog()
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	store, err := openLedger()
	if err != nil {
		log.Fatalf("ledger: %v", err)
	}
	defer store.Close()

	gate, spent, err := buildGate(openMode, network)
	if err != nil {
		log.Fatalf("payment: %v", err)
	}
	if spent != nil {
		defer spent.Close()
	}

	sinks := []observe.Sink{observe.NewLogSink()}
	if config.ParseBoolEnv("TRACING_ENABLED", false) {
		sinks = append(sinks, observeotel.NewSink(otel.GetTracerProvider()))
	}
	async := observe.NewAsyncSink(observe.NewMultiSink(sinks...), 256)
	defer async.Close()

	gw, err := gateway.New(gateway.Config{
		Catalog:        cat,
		Agents:         agents.NewRegistry(buildProvider()),
		Gate:           gate,
		Ledger:         store,
		PayTo:          payTo,
		Network:        network,
		HandlerTimeout: time.Duration(config.ParseIntEnv("HANDLER_TIMEOUT_SECONDS", 120)) * time.Second,
		Sink:           async,
	})
	if err != nil {
		log.Fatalf("gateway: %v", err)
	}

	srv, err := api.NewServer(api.Config{
		Addr:          addr,
		Catalog:       cat,
		Gateway:       gw,
		Ledger:        store,
		AllowedOrigin: config.GetEnv("CLIENT_URL", "http://localhost:5173"),
	})
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("\n  🤖 AgentPay server listening on %s", addr)
	log.Printf("  Network: %s", network)
	log.Printf("  Seller address: %s", payTo)
	log.Printf("  Agents: %d", cat.Len())
	if openMode {
		log.Println("  ⚠️  PAYMENT_MODE=open: payments are NOT enforced. Do not run this in production.")
	}

	if err := srv.ListenAndServe(ctx); err != nil && err != context.Canceled {
		log.Fatalf("server: %v", err)
	}
}

func loadCatalog() (*catalog.Catalog, error) {
	if path := config.GetEnv("CATALOG_FILE", ""); path != "" {
		log.Printf("loading catalog overlay from %s", path)
		return catalog.LoadFile(path)
	}
	return catalog.New(catalog.Builtin())
}

func openLedger() (ledger.Store, error) {
	if path := config.GetEnv("LEDGER_DB", ""); path != "" {
		log.Printf("ledger: sqlite at %s", path)
		return ledgersqlite.New(path)
	}
	log.Println("ledger: in-memory (set LEDGER_DB for durability)")
	return ledger.NewMemoryStore(), nil
}

func buildProvider() llm.Provider {
	apiKey := config.GetEnv("OPENAI_API_KEY", "")
	if apiKey == "" {
		log.Println("OPENAI_API_KEY not set, agents run on canned responses")
		return nil
	}
	var opts []openai.Option
	if model := config.GetEnv("OPENAI_MODEL", ""); model != "" {
		opts = append(opts, openai.WithModel(model))
	}
	if baseURL := config.GetEnv("OPENAI_BASE_URL", ""); baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	client, err := openai.New(apiKey, opts...)
	if err != nil {
		log.Printf("openai client unavailable, falling back to canned responses: %v", err)
		return nil
	}
	return client
}

// buildGate returns the payment gate and, in enforced mode, the spent
// reference registry that must be closed on shutdown.
func buildGate(openMode bool, network string) (payment.Gate, payment.SpentRegistry, error) {
	if openMode {
		return payment.OpenGate{}, nil, nil
	}

	facilitatorURL := config.GetEnv("FACILITATOR_URL", "")
	facilitator, err := payment.NewFacilitatorClient(facilitatorURL)
	if err != nil {
		return nil, nil, err
	}

	var spent payment.SpentRegistry
	if redisAddr := config.GetEnv("REDIS_ADDR", ""); redisAddr != "" {
		log.Printf("spent registry: redis at %s", redisAddr)
		spent, err = paymentredis.New(redisAddr,
			paymentredis.WithPassword(config.GetEnv("REDIS_PASSWORD", "")),
			paymentredis.WithDB(config.ParseIntEnv("REDIS_DB", 0)),
		)
		if err != nil {
			return nil, nil, err
		}
	} else {
		spent = payment.NewMemorySpentRegistry()
	}

	gate, err := payment.NewVerifierGate(facilitator, spent)
	if err != nil {
		spent.Close()
		return nil, nil, err
	}
	log.Printf("payments enforced via facilitator %s (network %s)", facilitatorURL, network)
	return gate, spent, nil
}
