package service

import (
	"fmt"

	"github.com/cross_escrow/model"
	"github.com/cross_escrow/repository"
)

func appendEvent(st repository.Store, t model.EventType, objectID string, orderHash []byte, at int64, payload interface{}) error {
	ev, err := model.NewSwapEvent(t, objectID, orderHash, at, payload)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", t, err)
	}
	return st.AppendEvent(ev)
}

func pay(st repository.Store, objectID string, orderHash []byte, recipient string, kind model.PayoutKind, amount uint64, at int64) error {
	if amount == 0 {
		return nil
	}
	return st.CreatePayout(&model.Payout{
		ObjectID:  objectID,
		OrderHash: orderHash,
		Recipient: recipient,
		Kind:      kind,
		Amount:    amount,
		PaidAt:    at,
	})
}
