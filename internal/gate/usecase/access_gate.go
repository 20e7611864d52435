package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	gateDomain "github.com/viralspark/gateway/internal/gate/domain"
	identityDomain "github.com/viralspark/gateway/internal/identity/domain"
	ledgerDomain "github.com/viralspark/gateway/internal/ledger/domain"
	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
)

// accessGate implements AccessGate.
//
// Check-then-record runs under a per-(subject, capability) stripe lock so the
// last free window slot goes to exactly one of any set of concurrent calls.
type accessGate struct {
	resolver        CapabilityResolver
	ledger          UsageLedger
	limiter         *slidingWindowLimiter
	locks           *keyLock
	decisionTimeout time.Duration
	logger          *slog.Logger
	nowFn           func() time.Time
}

// Authorize runs the admission sequence. See AccessGate for the contract.
func (g *accessGate) Authorize(
	ctx context.Context,
	identity *identityDomain.Identity,
	capabilityName string,
	endpoint string,
) *gateDomain.Decision {
	ctx, cancel := context.WithTimeout(ctx, g.decisionTimeout)
	defer cancel()

	if identity == nil || !identity.Active {
		decision := gateDomain.Deny(capabilityName, gateDomain.ReasonInactiveIdentity)
		g.recordDenied(ctx, identity, capabilityName, endpoint, decision)
		return decision
	}

	capability, err := g.resolver.Get(capabilityName)
	if err != nil {
		// An unregistered capability admits nobody.
		decision := gateDomain.Deny(capabilityName, gateDomain.ReasonCapabilityDisabled)
		g.recordDenied(ctx, identity, capabilityName, endpoint, decision)
		return decision
	}

	if !capability.Enabled {
		decision := gateDomain.Deny(capabilityName, gateDomain.ReasonCapabilityDisabled)
		g.recordDenied(ctx, identity, capabilityName, endpoint, decision)
		return decision
	}

	if !capability.AllowsRole(identity.Role) {
		decision := gateDomain.Deny(capabilityName, gateDomain.ReasonRoleForbidden)
		g.recordDenied(ctx, identity, capabilityName, endpoint, decision)
		return decision
	}

	return g.reserveSlot(ctx, identity, capability, endpoint)
}

// reserveSlot performs the locked check-then-record step.
func (g *accessGate) reserveSlot(
	ctx context.Context,
	identity *identityDomain.Identity,
	capability *registryDomain.Capability,
	endpoint string,
) *gateDomain.Decision {
	mu := g.locks.lock(identity.SubjectID + "\x00" + capability.Name)
	defer mu.Unlock()

	res, err := g.limiter.check(ctx, identity.SubjectID, capability)
	if err != nil {
		g.logger.Error("gate could not evaluate rate limit, denying",
			slog.String("subject_id", identity.SubjectID),
			slog.String("capability", capability.Name),
			slog.Any("error", err))
		return gateDomain.Deny(capability.Name, gateDomain.ReasonUnavailable)
	}

	if !res.allowed {
		decision := gateDomain.DenyRateLimited(capability.Name, res.retryAfter)
		g.recordDenied(ctx, identity, capability.Name, endpoint, decision)
		return decision
	}

	// The admitted record is what the limiter counts. If it cannot be
	// written the admission never happened, so the call is denied.
	record := &ledgerDomain.UsageRecord{
		SubjectID:  identity.SubjectID,
		Capability: capability.Name,
		Endpoint:   endpoint,
		Outcome:    ledgerDomain.OutcomeAdmitted,
		CreatedAt:  g.nowFn().UTC(),
	}
	if err := g.ledger.Record(ctx, record); err != nil {
		g.logger.Error("gate could not record admission, denying",
			slog.String("subject_id", identity.SubjectID),
			slog.String("capability", capability.Name),
			slog.Any("error", err))
		return gateDomain.Deny(capability.Name, gateDomain.ReasonUnavailable)
	}

	decision := gateDomain.Admit(capability.Name)
	decision.RecordID = record.ID
	return decision
}

// RecordLatency stamps the handler duration onto an admitted decision's
// ledger record. Latency is analytics only, failures are logged and dropped.
func (g *accessGate) RecordLatency(
	ctx context.Context,
	decision *gateDomain.Decision,
	elapsed time.Duration,
) {
	if decision == nil || !decision.Admitted || decision.RecordID == uuid.Nil {
		return
	}

	if err := g.ledger.SetElapsed(ctx, decision.RecordID, elapsed.Milliseconds()); err != nil {
		g.logger.Warn("failed to record call latency",
			slog.String("capability", decision.Capability),
			slog.Any("error", err))
	}
}

// recordDenied writes an analytics record for a denial. Failures are logged
// and dropped since denials never count toward any limit.
func (g *accessGate) recordDenied(
	ctx context.Context,
	identity *identityDomain.Identity,
	capabilityName string,
	endpoint string,
	decision *gateDomain.Decision,
) {
	subjectID := ""
	if identity != nil {
		subjectID = identity.SubjectID
	}

	record := &ledgerDomain.UsageRecord{
		SubjectID:    subjectID,
		Capability:   capabilityName,
		Endpoint:     endpoint,
		Outcome:      ledgerDomain.OutcomeDenied,
		ErrorMessage: string(decision.Reason),
		CreatedAt:    g.nowFn().UTC(),
	}
	if err := g.ledger.Record(ctx, record); err != nil {
		g.logger.Warn("failed to record denied call",
			slog.String("subject_id", subjectID),
			slog.String("capability", capabilityName),
			slog.Any("error", err))
	}
}

// NewAccessGate creates a new AccessGate with the provided dependencies.
// decisionTimeout bounds how long one admission check may take; when it
// expires the ledger calls fail and the gate denies.
func NewAccessGate(
	resolver CapabilityResolver,
	ledger UsageLedger,
	decisionTimeout time.Duration,
	logger *slog.Logger,
) AccessGate {
	nowFn := time.Now
	return &accessGate{
		resolver:        resolver,
		ledger:          ledger,
		limiter:         newSlidingWindowLimiter(ledger, nowFn),
		locks:           newKeyLock(),
		decisionTimeout: decisionTimeout,
		logger:          logger,
		nowFn:           nowFn,
	}
}
