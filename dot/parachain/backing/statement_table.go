// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package backing

import (
	"errors"
	"fmt"
	"sync"

	parachaintypes "github.com/ChainSafe/candidate-agreement/dot/parachain/types"
	"github.com/ChainSafe/candidate-agreement/internal/log"
	table "github.com/ChainSafe/candidate-agreement/pkg/statement-table"
	"github.com/tidwall/btree"
	"golang.org/x/exp/slices"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "parachain-candidate-backing"))

var (
	errCandidateDataNotFound      = errors.New("candidate data not found")
	errNotEnoughValidityVotes     = errors.New("not enough validity votes")
	errNotEnoughAvailabilityVotes = errors.New("not enough availability votes")
)

const (
	dropInvalidSignature = "invalid_signature"
	dropUnknownCandidate = "unknown_candidate"
	dropEmptyStatement   = "empty_statement"
)

// Summary represents summary of import of a statement.
type Summary = table.Summary[parachaintypes.CandidateHash, parachaintypes.ParaID]

// Thresholds are the vote counts a candidate needs before it can be included.
type Thresholds struct {
	// Validity is the number of positive validity votes required.
	Validity int
	// Availability is the number of availability votes required.
	Availability int
}

// AttestedCandidate represents an attested-to candidate.
type AttestedCandidate struct {
	// The group ID that the candidate is in.
	GroupID parachaintypes.ParaID
	// The candidate data.
	Candidate parachaintypes.CandidateReceipt
	// Validity attestations, ordered by validator index.
	ValidityAttestations []parachaintypes.ValidityAttestation
}

// StatementTable is the statement table for parachain candidates under a single
// relay parent. It is safe for concurrent use.
type StatementTable struct {
	mutex      sync.Mutex
	table      *table.Table[parachaintypes.ValidatorIndex, parachaintypes.CandidateHash,
		parachaintypes.CandidateReceipt, parachaintypes.ParaID, parachaintypes.StatementSignature]
	context    *TableContext
	thresholds Thresholds
	metrics    *Metrics
}

// NewStatementTable creates an empty statement table. The metrics argument may be nil.
func NewStatementTable(tableContext *TableContext, thresholds Thresholds, metrics *Metrics) *StatementTable {
	return &StatementTable{
		table: table.New[parachaintypes.ValidatorIndex, parachaintypes.CandidateHash,
			parachaintypes.CandidateReceipt, parachaintypes.ParaID, parachaintypes.StatementSignature](),
		context:    tableContext,
		thresholds: thresholds,
		metrics:    metrics,
	}
}

// ImportStatement imports a signed statement into the table and returns the summary
// of the candidate it references. It returns nil when the statement is dropped.
func (st *StatementTable) ImportStatement(statement parachaintypes.SignedStatement) *Summary {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	kind, digest, ok := st.describe(statement.Statement)
	if !ok {
		logger.Debugf("dropping empty statement from validator %d", statement.Signature.ValidatorIndex)
		st.metrics.statementDropped(dropEmptyStatement)
		return nil
	}

	signer, ok := st.context.StatementSigner(statement)
	if !ok {
		logger.Debugf("dropping %s: signature of validator %d does not verify",
			statement.Statement, statement.Signature.ValidatorIndex)
		st.metrics.statementDropped(dropInvalidSignature)
		return nil
	}

	if kind != kindSeconded {
		if _, _, known := st.table.Candidate(digest); !known {
			logger.Debugf("dropping %s from validator %d: unknown candidate", statement.Statement, signer)
			st.metrics.statementDropped(dropUnknownCandidate)
			return nil
		}
	}

	before, hadMisbehavior := st.table.Misbehavior(signer)
	st.table.ImportStatement(verifiedContext{TableContext: st.context, signer: signer}, statement)
	st.metrics.statementImported(kind)

	after, hasMisbehavior := st.table.Misbehavior(signer)
	if hasMisbehavior && (!hadMisbehavior || before != after) {
		report := parachaintypes.ProvisionableDataMisbehaviorReport{ValidatorIndex: signer, Misbehaviour: after}
		logger.Warnf("misbehavior detected: %s", report)
		st.metrics.misbehaviorDetected(after.Kind())
	}

	summary, ok := st.table.Summary(digest)
	if !ok {
		return nil
	}
	return summary
}

// Summary returns the summary of the candidate with the given hash.
func (st *StatementTable) Summary(candidateHash parachaintypes.CandidateHash) (*Summary, bool) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	return st.table.Summary(candidateHash)
}

// Candidate returns the candidate receipt with the given hash.
func (st *StatementTable) Candidate(candidateHash parachaintypes.CandidateHash) (
	parachaintypes.CandidateReceipt, bool) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	candidate, _, ok := st.table.Candidate(candidateHash)
	return candidate, ok
}

// AttestedCandidate returns the candidate with the given hash together with the
// attestations of its validity, if it has reached both thresholds.
func (st *StatementTable) AttestedCandidate(candidateHash parachaintypes.CandidateHash) (*AttestedCandidate, error) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	return st.attestedCandidate(candidateHash)
}

func (st *StatementTable) attestedCandidate(candidateHash parachaintypes.CandidateHash) (*AttestedCandidate, error) {
	candidate, group, ok := st.table.Candidate(candidateHash)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errCandidateDataNotFound, candidateHash)
	}

	summary, _ := st.table.Summary(candidateHash)
	if summary.PositiveValidityVotes < st.thresholds.Validity {
		return nil, fmt.Errorf("%w: %d of %d", errNotEnoughValidityVotes,
			summary.PositiveValidityVotes, st.thresholds.Validity)
	}
	if summary.AvailabilityVotes < st.thresholds.Availability {
		return nil, fmt.Errorf("%w: %d of %d", errNotEnoughAvailabilityVotes,
			summary.AvailabilityVotes, st.thresholds.Availability)
	}

	members := slices.Clone(st.context.groupMembers(group))
	slices.Sort(members)
	members = slices.Compact(members)

	attestations := make([]parachaintypes.ValidityAttestation, 0, summary.PositiveValidityVotes)
	for _, member := range members {
		valid, signature, ok := st.table.ValidityVote(candidateHash, member)
		if !ok || !valid {
			continue
		}
		attestations = append(attestations, parachaintypes.ValidityAttestation{
			ValidatorIndex: member,
			Signature:      signature.Signature,
		})
	}

	return &AttestedCandidate{
		GroupID:              group,
		Candidate:            candidate,
		ValidityAttestations: attestations,
	}, nil
}

// IncludableCandidates returns the candidates which reached both thresholds, ordered
// by para id.
func (st *StatementTable) IncludableCandidates() []parachaintypes.CandidateReceipt {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	return st.table.IncludableCandidates(
		st.thresholds.Validity, st.thresholds.Availability, parachaintypes.CompareCandidateReceipts)
}

// BackableCandidates returns the attested form of every includable candidate.
func (st *StatementTable) BackableCandidates() []AttestedCandidate {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	candidates := st.table.IncludableCandidates(
		st.thresholds.Validity, st.thresholds.Availability, parachaintypes.CompareCandidateReceipts)
	backable := make([]AttestedCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		// includable candidates satisfy both thresholds, so this only fails
		// if the table and its context disagree on the candidate.
		attested, err := st.attestedCandidate(st.context.CandidateDigest(candidate))
		if err != nil {
			logger.Errorf("skipping includable candidate: %s", err)
			continue
		}
		backable = append(backable, *attested)
	}
	return backable
}

// DrainMisbehaviors returns the misbehavior reports detected so far, ordered by
// validator index, and clears them from the table.
func (st *StatementTable) DrainMisbehaviors() []parachaintypes.ProvisionableDataMisbehaviorReport {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	drained := st.table.DrainMisbehavior()
	ordered := btree.NewMap[parachaintypes.ValidatorIndex, parachaintypes.Misbehaviour](2)
	for validator, misbehaviour := range drained {
		ordered.Set(validator, misbehaviour)
	}

	reports := make([]parachaintypes.ProvisionableDataMisbehaviorReport, 0, len(drained))
	ordered.Scan(func(validator parachaintypes.ValidatorIndex, misbehaviour parachaintypes.Misbehaviour) bool {
		reports = append(reports, parachaintypes.ProvisionableDataMisbehaviorReport{
			ValidatorIndex: validator,
			Misbehaviour:   misbehaviour,
		})
		return true
	})
	return reports
}

const (
	kindSeconded  = "seconded"
	kindValid     = "valid"
	kindInvalid   = "invalid"
	kindAvailable = "available"
)

// describe returns the kind of the statement and the hash of the candidate it references.
func (st *StatementTable) describe(statement parachaintypes.Statement) (
	kind string, candidateHash parachaintypes.CandidateHash, ok bool) {
	switch s := statement.Value().(type) {
	case table.Candidate[parachaintypes.CandidateReceipt]:
		return kindSeconded, st.context.CandidateDigest(s.Candidate), true
	case table.Valid[parachaintypes.CandidateHash]:
		return kindValid, s.Digest, true
	case table.Invalid[parachaintypes.CandidateHash]:
		return kindInvalid, s.Digest, true
	case table.Available[parachaintypes.CandidateHash]:
		return kindAvailable, s.Digest, true
	default:
		return "", candidateHash, false
	}
}
