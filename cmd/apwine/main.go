package main

import (
	"context"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"

	"github.com/APWine/apwine-sdk/client"
	"github.com/APWine/apwine-sdk/internal/logger"
	"github.com/APWine/apwine-sdk/internal/metrics"
	"github.com/APWine/apwine-sdk/network"
)

const readyTimeout = 30 * time.Second

// main dials the configured RPC endpoint, builds an SDK session (signing when
// PRIVATE_KEY is set, read-only otherwise) and dumps the protocol state.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("Warning: .env file not found. Relying on OS environment variables.")
	}

	logger.Initialize(os.Getenv("LOG_LEVEL"))
	log.Info().Msg("APWine SDK demo starting...")

	rpcURL := os.Getenv("ETH_RPC")
	if rpcURL == "" {
		log.Fatal().Msg("ETH_RPC is required")
	}

	net, err := network.Parse(envOr("APWINE_NETWORK", string(network.Mainnet)))
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid APWINE_NETWORK")
	}

	if addr := os.Getenv("METRICS_ADDR"); addr != "" {
		metrics.Serve(addr)
		log.Info().Str("addr", addr).Msg("Serving /metrics")
	}

	backend, err := ethclient.Dial(rpcURL)
	if err != nil {
		log.Fatal().Err(err).Str("rpc", rpcURL).Msg("Failed to dial RPC endpoint")
	}
	defer backend.Close()

	opts := []client.Option{}
	if keyHex := os.Getenv("PRIVATE_KEY"); keyHex != "" {
		key, err := crypto.HexToECDSA(keyHex)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid PRIVATE_KEY")
		}
		chainID, err := network.ChainID(net)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to resolve chain id")
		}
		signer, err := bind.NewKeyedTransactorWithChainID(key, chainID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to build transactor")
		}
		opts = append(opts, client.WithSigner(signer))
	}

	session, err := client.New(net, backend, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to construct session")
	}

	ctx, cancel := context.WithTimeout(context.Background(), readyTimeout)
	defer cancel()
	if err := session.AwaitReady(ctx); err != nil {
		log.Fatal().Err(err).Msg("Session initialization failed")
	}

	controller, err := session.ControllerAddress()
	if err != nil {
		log.Fatal().Err(err).Msg("Controller address unavailable")
	}
	log.Info().Str("network", string(net)).Str("controller", controller.Hex()).Msg("Session ready")

	futures, err := session.FetchFutureAggregates(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch future aggregates")
	}
	for _, future := range futures {
		log.Info().
			Str("vault", future.Address.Hex()).
			Str("symbol", future.Symbol).
			Str("period", future.CurrentPeriodIndex.String()).
			Str("pt", future.PT.Hex()).
			Str("fyt", future.FYT.Hex()).
			Msg("Future vault")
	}

	amms, err := session.FetchAMMs(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch AMM list")
	}
	for _, amm := range amms {
		log.Info().
			Str("amm", amm.Address.Hex()).
			Str("future", amm.Future.Hex()).
			Bool("paused", amm.Paused).
			Msg("AMM")
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
