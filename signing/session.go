package signing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// state is the session lifecycle: building until the first Request, then
// submitted forever, regardless of outcome.
type state uint8

const (
	stateBuilding state = iota
	stateSubmitted
)

// TxSession accumulates a transaction signing request and issues it exactly
// once. Sessions are single-use and single-writer: they carry no internal
// synchronization and must not be shared between goroutines.
type TxSession struct {
	authority Authority
	state     state
	message   []TxClause
	hasMsg    bool
}

// NewTxSession starts a transaction signing session against the given
// authority.
func NewTxSession(authority Authority) *TxSession {
	return &TxSession{authority: authority}
}

// Message sets the clauses to sign. Calling it again before Request replaces
// the previous message entirely; last write wins.
func (s *TxSession) Message(clauses ...TxClause) *TxSession {
	s.message = clauses
	s.hasMsg = true
	return s
}

// Request freezes the message and options and forwards them to the signing
// authority, resolving exactly once: with the broadcast result, with an
// error wrapping ErrRejected when the authority declined, or with a
// transport error when it was unreachable.
//
// A session accepts exactly one Request; later calls fail with
// ErrInvalidState no matter how the first one ended. Canceling ctx resolves
// the call as Rejected once the authority confirms nothing was signed.
func (s *TxSession) Request(ctx context.Context, opts TxOptions) (*TxResult, error) {
	if s.state != stateBuilding {
		return nil, fmt.Errorf("%w: session already submitted", ErrInvalidState)
	}
	if !s.hasMsg {
		return nil, fmt.Errorf("%w: message not set", ErrInvalidState)
	}
	s.state = stateSubmitted

	return s.authority.SignTx(ctx, TxRequest{
		RequestID: uuid.NewString(),
		Message:   s.message,
		Options:   opts,
	})
}

// CertSession accumulates a certificate signing request. Same single-use,
// single-writer contract as TxSession.
type CertSession struct {
	authority Authority
	state     state
	message   CertMessage
	hasMsg    bool
}

// NewCertSession starts a certificate signing session against the given
// authority.
func NewCertSession(authority Authority) *CertSession {
	return &CertSession{authority: authority}
}

// Message sets the certificate purpose and payload. Last write wins.
func (s *CertSession) Message(msg CertMessage) *CertSession {
	s.message = msg
	s.hasMsg = true
	return s
}

// Request submits the certificate request under the same lifecycle contract
// as TxSession.Request. On success the returned assertion is meant for
// off-chain verification; nothing is broadcast.
func (s *CertSession) Request(ctx context.Context, opts CertOptions) (*CertResult, error) {
	if s.state != stateBuilding {
		return nil, fmt.Errorf("%w: session already submitted", ErrInvalidState)
	}
	if !s.hasMsg {
		return nil, fmt.Errorf("%w: message not set", ErrInvalidState)
	}
	s.state = stateSubmitted

	return s.authority.SignCert(ctx, CertRequest{
		RequestID: uuid.NewString(),
		Message:   s.message,
		Options:   opts,
	})
}
