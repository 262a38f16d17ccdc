package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quantbacktest/api"
	"quantbacktest/internal/backtest"
	"quantbacktest/internal/calculator"
	"quantbacktest/internal/chart"
	"quantbacktest/internal/logger"
	"quantbacktest/internal/marketdata"
	"quantbacktest/internal/strategy"
)

func main() {
	root := &cobra.Command{
		Use:          "quantbacktest",
		Short:        "Signal-driven backtesting and MPT portfolio analytics",
		SilenceUsage: true,
	}
	root.AddCommand(apiCmd())
	root.AddCommand(backtestCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func apiCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "api",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()
			handler := api.ApiHandler{
				MarketData: marketdata.NewService(marketdata.DefaultCacheTTL),
				Logger:     log,
			}
			log.Infow("starting api", "port", port)
			return handler.StartApi(port)
		},
	}
	cmd.Flags().IntVar(&port, "port", 3009, "port to listen on")
	return cmd
}

func backtestCmd() *cobra.Command {
	var (
		file       string
		strategyID string
		paramsJSON string
		capital    float64
		commission float64
		slippage   float64
		chartOut   string
	)

	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Run a one-off backtest from a CSV bars file",
		RunE: func(cmd *cobra.Command, args []string) error {
			bars, err := marketdata.LoadBarsFile(file)
			if err != nil {
				return err
			}

			params := strategy.Params{}
			if paramsJSON != "" {
				if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
					return fmt.Errorf("invalid parameters json: %w", err)
				}
			}

			signals, err := strategy.GenerateSignals(bars, strategyID, params)
			if err != nil {
				return err
			}

			result := backtest.Simulate(bars, signals, backtest.Config{
				InitialCapital: capital,
				Commission:     commission,
				Slippage:       slippage,
			})
			summary := calculator.Analyze(result.Equity, result.Trades, capital)

			out, err := json.MarshalIndent(map[string]any{
				"summary": summary,
				"trades":  result.Trades,
			}, "", "    ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))

			if chartOut != "" {
				img, err := chart.EquityCurve(fmt.Sprintf("%s on %s", strategyID, file), result.Equity, signals)
				if err != nil {
					return err
				}
				if err := os.WriteFile(chartOut, img, 0o644); err != nil {
					return fmt.Errorf("failed to write chart: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "CSV file of daily bars (date,open,high,low,close,volume)")
	cmd.Flags().StringVar(&strategyID, "strategy", strategy.MovingAverageCrossover, "strategy id")
	cmd.Flags().StringVar(&paramsJSON, "parameters", "", "strategy parameters as a JSON object")
	cmd.Flags().Float64Var(&capital, "capital", backtest.DefaultInitialCapital, "initial capital")
	cmd.Flags().Float64Var(&commission, "commission", backtest.DefaultCommission, "commission rate per side")
	cmd.Flags().Float64Var(&slippage, "slippage", backtest.DefaultSlippage, "slippage rate per side")
	cmd.Flags().StringVar(&chartOut, "chart", "", "write an equity curve PNG to this path")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
