// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package backing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	parachaintypes "github.com/ChainSafe/candidate-agreement/dot/parachain/types"
)

//go:generate mockgen -destination=mocks_test.go -package=$GOPACKAGE . MisbehaviorReporter

var errUnknownMessage = errors.New("unknown message")

// MisbehaviorReporter receives the misbehavior reports drained from the statement table.
type MisbehaviorReporter interface {
	ReportMisbehavior(report parachaintypes.ProvisionableDataMisbehaviorReport)
}

// StatementMessage carries a signed statement to import into the statement table.
type StatementMessage struct {
	SignedStatement parachaintypes.SignedStatement
}

// GetBackableCandidatesMessage requests the candidates which can be backed, together
// with their validity attestations.
type GetBackableCandidatesMessage struct {
	ResponseCh chan []AttestedCandidate
}

// CandidateBacking is the subsystem owning the statement table. It is the single
// consumer of its message channel, so statements are applied one at a time in
// arrival order.
type CandidateBacking struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	table    *StatementTable
	reporter MisbehaviorReporter
}

// New creates a new CandidateBacking instance around the statement table.
func New(statementTable *StatementTable, reporter MisbehaviorReporter) *CandidateBacking {
	return &CandidateBacking{
		ctx:      context.Background(),
		table:    statementTable,
		reporter: reporter,
	}
}

// Run starts processing messages until the context is cancelled or Stop is called.
func (cb *CandidateBacking) Run(ctx context.Context, overseerToSubSystem <-chan any) {
	cb.ctx, cb.cancel = context.WithCancel(ctx)
	cb.wg.Add(1)
	go cb.runUtil(overseerToSubSystem)
}

func (cb *CandidateBacking) runUtil(overseerToSubSystem <-chan any) {
	defer cb.wg.Done()

	for {
		select {
		case msg, ok := <-overseerToSubSystem:
			if !ok {
				logger.Info("message channel closed")
				return
			}
			if err := cb.processMessage(msg); err != nil {
				logger.Error(err.Error())
			}
		case <-cb.ctx.Done():
			if err := cb.ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
				logger.Errorf("ctx error: %s", err)
			} else {
				logger.Info("Context canceled")
			}
			return
		}
	}
}

// Stop stops the subsystem and waits for its goroutine to exit.
func (cb *CandidateBacking) Stop() {
	if cb.cancel == nil {
		return
	}
	cb.cancel()
	cb.wg.Wait()
}

func (cb *CandidateBacking) processMessage(msg any) error {
	switch msg := msg.(type) {
	case StatementMessage:
		cb.handleStatementMessage(msg.SignedStatement)
	case GetBackableCandidatesMessage:
		cb.handleGetBackableCandidatesMessage(msg.ResponseCh)
	default:
		return fmt.Errorf("%w: %T", errUnknownMessage, msg)
	}
	return nil
}

func (cb *CandidateBacking) handleStatementMessage(statement parachaintypes.SignedStatement) {
	summary := cb.table.ImportStatement(statement)
	if summary != nil {
		logger.Tracef("candidate %s of para %d has %d validity and %d availability votes",
			summary.Candidate, summary.GroupID, summary.ValidityVotes, summary.AvailabilityVotes)
	}

	if cb.reporter == nil {
		return
	}
	for _, report := range cb.table.DrainMisbehaviors() {
		cb.reporter.ReportMisbehavior(report)
	}
}

func (cb *CandidateBacking) handleGetBackableCandidatesMessage(responseCh chan []AttestedCandidate) {
	backable := cb.table.BackableCandidates()
	select {
	case responseCh <- backable:
	case <-cb.ctx.Done():
	}
}
