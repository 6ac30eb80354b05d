// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	cfg "github.com/ChainSafe/candidate-agreement/config"
	"github.com/ChainSafe/candidate-agreement/dot/parachain/backing"
	parachaintypes "github.com/ChainSafe/candidate-agreement/dot/parachain/types"
	"github.com/ChainSafe/candidate-agreement/internal/log"
	"github.com/ChainSafe/candidate-agreement/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli"
)

var errScenarioRequired = errors.New("--scenario is required")

// reportCollector keeps the misbehavior reports in the order the subsystem emits them.
type reportCollector struct {
	reports []parachaintypes.ProvisionableDataMisbehaviorReport
}

func (rc *reportCollector) ReportMisbehavior(report parachaintypes.ProvisionableDataMisbehaviorReport) {
	rc.reports = append(rc.reports, report)
}

func loadConfig(ctx *cli.Context) (*cfg.Config, error) {
	config := cfg.DefaultConfig()
	if file := ctx.String(ConfigFlag.Name); file != "" {
		logger.Info("loading toml configuration from " + file + "...")
		var err error
		config, err = cfg.Load(file)
		if err != nil {
			return nil, fmt.Errorf("loading configuration: %w", err)
		}
	}

	if level := ctx.String(LogFlag.Name); level != "" {
		config.Log.Level = level
		if err := config.Validate(); err != nil {
			return nil, fmt.Errorf("--log: %w", err)
		}
	}
	return config, nil
}

func runAction(ctx *cli.Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	log.Patch(log.SetLevel(config.LogLevel()))

	scenarioPath := ctx.String(ScenarioFlag.Name)
	if scenarioPath == "" {
		return errScenarioRequired
	}
	sc, err := loadScenario(scenarioPath)
	if err != nil {
		return err
	}
	st, err := sc.build()
	if err != nil {
		return fmt.Errorf("building scenario: %w", err)
	}

	registry := prometheus.NewRegistry()
	tableMetrics, err := backing.NewMetrics(registry)
	if err != nil {
		return fmt.Errorf("creating metrics: %w", err)
	}

	var server *metrics.Server
	if config.Metrics.Enabled {
		server = metrics.NewServer(config.Metrics.Address, registry)
		if err = server.Start(); err != nil {
			return fmt.Errorf("starting metrics server: %w", err)
		}
		defer func() {
			if err := server.Stop(); err != nil {
				logger.Errorf("stopping metrics server: %s", err)
			}
		}()
	}

	tableContext := backing.NewTableContext(st.signingContext, st.validators, st.groups, st.guarantors)
	statementTable := backing.NewStatementTable(tableContext, backing.Thresholds{
		Validity:     config.Table.ValidityThreshold,
		Availability: config.Table.AvailabilityThreshold,
	}, tableMetrics)

	reporter := &reportCollector{}
	backable := replay(statementTable, reporter, st.statements)

	logger.Infof("imported %d statements", len(st.statements))
	printResults(ctx.App.Writer, st, statementTable, backable, reporter.reports)

	if server != nil && ctx.Bool(WaitFlag.Name) {
		logger.Infof("serving metrics at http://%s/metrics, interrupt to exit", server.Address())
		signals, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-signals.Done()
	}
	return nil
}

// replay runs the statements through the candidate backing subsystem and returns the
// candidates it can back once every statement was processed.
func replay(statementTable *backing.StatementTable, reporter backing.MisbehaviorReporter,
	statements []parachaintypes.SignedStatement) []backing.AttestedCandidate {
	subsystem := backing.New(statementTable, reporter)
	messages := make(chan any)
	subsystem.Run(context.Background(), messages)
	defer subsystem.Stop()

	for _, statement := range statements {
		messages <- backing.StatementMessage{SignedStatement: statement}
	}

	responseCh := make(chan []backing.AttestedCandidate)
	messages <- backing.GetBackableCandidatesMessage{ResponseCh: responseCh}
	return <-responseCh
}

func printResults(w io.Writer, st *setup, statementTable *backing.StatementTable,
	backable []backing.AttestedCandidate, reports []parachaintypes.ProvisionableDataMisbehaviorReport) {
	names := make(map[parachaintypes.CandidateHash]string, len(st.candidates))

	fmt.Fprintln(w, "candidates:")
	for _, candidate := range st.candidates {
		hash := candidate.receipt.MustHash()
		names[hash] = candidate.name

		summary, ok := statementTable.Summary(hash)
		if !ok {
			fmt.Fprintf(w, "  %s (%s): not in table\n", candidate.name, hash.Value.Short())
			continue
		}
		fmt.Fprintf(w, "  %s (%s): para %d, validity votes %d (%d valid), availability votes %d\n",
			candidate.name, hash.Value.Short(), summary.GroupID,
			summary.ValidityVotes, summary.PositiveValidityVotes, summary.AvailabilityVotes)
	}

	fmt.Fprintln(w, "backable:")
	for _, attested := range backable {
		validators := make([]parachaintypes.ValidatorIndex, len(attested.ValidityAttestations))
		for i, attestation := range attested.ValidityAttestations {
			validators[i] = attestation.ValidatorIndex
		}
		fmt.Fprintf(w, "  %s: para %d, attested by validators %v\n",
			names[attested.Candidate.MustHash()], attested.GroupID, validators)
	}

	fmt.Fprintln(w, "misbehavior:")
	for _, report := range reports {
		fmt.Fprintf(w, "  %s: %s\n", report.Misbehaviour.Kind(), report)
	}
}
