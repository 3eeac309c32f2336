package verify

import (
	"github.com/provablyfair/slotcore/domain/session"
	"github.com/provablyfair/slotcore/domain/verify"
)

// ViewFromRecord projects a domain/session.SpinRecord into the minimal
// shape VerifySpin/VerifySession need, keeping domain/verify decoupled from
// session construction internals.
func ViewFromRecord(record session.SpinRecord) verify.SpinRecordView {
	return verify.SpinRecordView{
		SpinID:        record.SpinID,
		Nonce:         record.Nonce,
		BetCents:      record.BetCents,
		EntropyHex:    record.EntropyHex,
		ReelPositions: record.ReelPositions,
		Symbols:       record.Symbols,
		HouseSeed:     record.Proof.HouseSeed,
		ClientSeed:    record.Proof.ClientSeed,
		Commitment:    record.Proof.Commitment,
		Signature:     record.Proof.Signature,
	}
}

// ViewsFromRecords projects a slice of SpinRecords.
func ViewsFromRecords(records []session.SpinRecord) []verify.SpinRecordView {
	views := make([]verify.SpinRecordView, len(records))
	for i, r := range records {
		views[i] = ViewFromRecord(r)
	}
	return views
}
