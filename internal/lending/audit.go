package lending

import (
	"github.com/ethereum/go-ethereum/common"
)

// AuditFinding is an event that should have been accompanied by a pool token
// Transfer in the same transaction but was not.
type AuditFinding struct {
	Event    string
	Market   common.Address
	TxHash   common.Hash
	LogIndex uint
}

type auditExpectation struct {
	event  string
	market common.Address
	meta   Meta
}

// TransferAuditor checks the sequencing assumption the projection relies on:
// Mint, Redeem and LiquidateBorrow never change balances themselves, so each
// must come with a Transfer of the affected pool token in the same transaction.
// A transaction is audited once the first event of the next one is observed,
// or on Flush.
type TransferAuditor struct {
	tx        common.Hash
	transfers map[common.Address]struct{}
	expected  []auditExpectation
}

// NewTransferAuditor creates an empty auditor.
func NewTransferAuditor() *TransferAuditor {
	return &TransferAuditor{
		transfers: make(map[common.Address]struct{}),
	}
}

// Observe records ev and returns the findings of the previous transaction when
// ev starts a new one.
func (a *TransferAuditor) Observe(ev Event) []AuditFinding {
	meta := ev.EventMeta()

	var findings []AuditFinding
	if meta.TxHash != a.tx {
		findings = a.Flush()
		a.tx = meta.TxHash
	}

	switch e := ev.(type) {
	case *Transfer:
		a.transfers[e.Address] = struct{}{}
	case *Mint:
		a.expect("Mint", e.Address, meta)
	case *Redeem:
		a.expect("Redeem", e.Address, meta)
	case *LiquidateBorrow:
		// seized collateral moves in the collateral market
		a.expect("LiquidateBorrow", e.PoolTokenCollateral, meta)
	}

	return findings
}

// Flush audits the current transaction and resets the auditor.
func (a *TransferAuditor) Flush() []AuditFinding {
	var findings []AuditFinding
	for _, exp := range a.expected {
		if _, ok := a.transfers[exp.market]; ok {
			continue
		}
		findings = append(findings, AuditFinding{
			Event:    exp.event,
			Market:   exp.market,
			TxHash:   exp.meta.TxHash,
			LogIndex: exp.meta.LogIndex,
		})
	}

	a.tx = common.Hash{}
	a.expected = a.expected[:0]
	clear(a.transfers)

	return findings
}

func (a *TransferAuditor) expect(event string, market common.Address, meta Meta) {
	a.expected = append(a.expected, auditExpectation{event: event, market: market, meta: meta})
}
