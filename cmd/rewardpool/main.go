// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewardpool/api"
	"github.com/vechain/rewardpool/custody"
	"github.com/vechain/rewardpool/distributor"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/metrics"
	"github.com/vechain/rewardpool/pool"
	"github.com/vechain/rewardpool/solidity"
	"github.com/vechain/rewardpool/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "rewardpool")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "rewardpool",
		Usage:     "Multi-asset staking reward pool",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			configFlag,
			dataDirFlag,
			persistFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			enableAPILogsFlag,
			apiSlowQueriesThresholdFlag,
			pprofFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			verbosityFlag,
			jsonLogsFlag,
			logDirFlag,
			ntpCheckFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	logLevel, closeLogs, err := initLogger(ctx)
	if err != nil {
		return err
	}
	defer closeLogs()

	cfg, err := loadConfig(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}
	if ctx.Bool(ntpCheckFlag.Name) {
		checkClockOffset()
	}

	db, dbPath, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing pool database..."); db.Close() }()

	st := state.NewWithCache(db, stateCacheSize(ctx))
	ledger := custody.NewLedger(solidity.NewContext(cfg.CustodyAddress, st), cfg.PoolAddress)
	p, err := pool.New(cfg.PoolAddress, st, ledger, &pool.SystemClock{}, cfg.Pool)
	if err != nil {
		return err
	}

	dist, err := distributor.New(p, cfg.Pool.RewardDistributor, cfg.Distribution)
	if err != nil {
		return err
	}

	apiLogs := &atomic.Bool{}
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))
	handler := api.New(p, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		PprofOn:              ctx.Bool(pprofFlag.Name),
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		EnableReqLogger:      apiLogs,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		LogLevel:             logLevel,
	})
	apiSrv, apiListener, err := newAPIServer(ctx, handler)
	if err != nil {
		return err
	}

	var (
		metricsSrv      *http.Server
		metricsListener net.Listener
	)
	if ctx.Bool(enableMetricsFlag.Name) {
		if metricsSrv, metricsListener, err = newMetricsServer(ctx.String(metricsAddrFlag.Name)); err != nil {
			apiListener.Close()
			return err
		}
		logger.Info("metrics server started", "url", "http://"+metricsListener.Addr().String()+"/metrics")
	}

	exitCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	group, groupCtx := errgroup.WithContext(exitCtx)

	group.Go(func() error {
		return serve(groupCtx, apiSrv, apiListener)
	})
	if metricsSrv != nil {
		group.Go(func() error {
			return serve(groupCtx, metricsSrv, metricsListener)
		})
	}
	if dist.Plans() > 0 {
		dist.Start()
		group.Go(func() error {
			<-groupCtx.Done()
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			dist.Stop(stopCtx)
			return nil
		})
	}

	logger.Info("reward pool started",
		"version", fullVersion(),
		"pool", cfg.PoolAddress,
		"stakingAsset", cfg.Pool.StakingAsset,
		"rewardAssets", len(cfg.Pool.RewardAssets),
		"plans", dist.Plans(),
		"database", dbPath,
		"api", "http://"+apiListener.Addr().String()+"/",
	)

	return group.Wait()
}
