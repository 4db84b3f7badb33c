// Package signing submits signing requests to an external signing authority
// (typically a user-facing wallet) without ever touching key material.
//
// A session is built incrementally: set the message, then issue it exactly
// once with Request. Two request kinds exist, dispatched by concrete session
// type: transactions (signed and broadcast by the authority) and
// certificates (signed identity assertions, never broadcast).
package signing

import (
	"context"
	"errors"

	"github.com/vireolabs/thorlink/types"
)

var (
	// ErrRejected reports that the signing authority explicitly declined
	// the request: the user canceled, or policy refused it. This is a
	// normal, expected outcome, distinct from the authority being
	// unreachable (which surfaces as an ordinary transport error).
	ErrRejected = errors.New("signing: request rejected")

	// ErrInvalidState reports misuse of a single-use session: a second
	// Request, or a Request before any message was set.
	ErrInvalidState = errors.New("signing: invalid session state")
)

type (
	// TxClause is one clause of a transaction signing request, with an
	// optional human-readable comment the authority may display alongside
	// the approval prompt.
	TxClause struct {
		To      *types.Address `json:"to"`
		Value   types.Quantity `json:"value"`
		Data    types.HexData  `json:"data"`
		Comment string         `json:"comment,omitempty"`
	}

	// TxOptions are the caller's hints attached to a transaction request.
	// All fields are optional.
	TxOptions struct {
		// Signer suggests which identity should sign.
		Signer *types.Address `json:"signer,omitempty"`
		// Gas caps the gas the signed transaction may carry.
		Gas uint64 `json:"gas,omitempty"`
		// DependsOn defers execution until the given transaction succeeds.
		DependsOn *types.Bytes32 `json:"dependsOn,omitempty"`
		// Delegator suggests a fee delegator the authority may engage.
		Delegator *types.Address `json:"delegator,omitempty"`
		// Link is a callback URL the authority loads after broadcast.
		Link string `json:"link,omitempty"`
		// Comment annotates the request as a whole.
		Comment string `json:"comment,omitempty"`
	}

	// TxResult is the outcome of an approved transaction request. It means
	// the authority accepted and broadcast the transaction; it does NOT
	// mean on-chain inclusion, which callers must poll for separately.
	TxResult struct {
		TxID   types.Bytes32 `json:"txid"`
		Signer types.Address `json:"signer"`
	}

	// CertPurpose states why a certificate is being requested.
	CertPurpose string

	// CertPayload is the content a certificate binds to the signer.
	CertPayload struct {
		Type    string `json:"type"`
		Content string `json:"content"`
	}

	// CertMessage is the unsigned body of a certificate request.
	CertMessage struct {
		Purpose CertPurpose `json:"purpose"`
		Payload CertPayload `json:"payload"`
	}

	// CertOptions are the caller's hints attached to a certificate request.
	CertOptions struct {
		Signer *types.Address `json:"signer,omitempty"`
		Link   string         `json:"link,omitempty"`
	}

	// CertAnnex is the context the authority stamps into the signed
	// assertion: the requesting domain, the signing time, and the signer.
	CertAnnex struct {
		Domain    string        `json:"domain"`
		Timestamp uint64        `json:"timestamp"`
		Signer    types.Address `json:"signer"`
	}

	// CertResult is a signed identity assertion binding the message and
	// annex to the signer, intended for off-chain verification. Nothing is
	// broadcast.
	CertResult struct {
		Annex     CertAnnex     `json:"annex"`
		Signature types.HexData `json:"signature"`
	}

	// TxRequest is the frozen payload handed to the authority. RequestID
	// correlates the request across process boundaries (library, node, and
	// the human-mediated signer).
	TxRequest struct {
		RequestID string     `json:"requestID"`
		Message   []TxClause `json:"message"`
		Options   TxOptions  `json:"options"`
	}

	// CertRequest is the certificate counterpart of TxRequest.
	CertRequest struct {
		RequestID string      `json:"requestID"`
		Message   CertMessage `json:"message"`
		Options   CertOptions `json:"options"`
	}
)

// CertPurpose values understood by conforming authorities.
const (
	CertPurposeIdentification CertPurpose = "identification"
	CertPurposeAgreement      CertPurpose = "agreement"
)

// Authority is the external signing authority. Implementations must return
// an error wrapping ErrRejected when the request was explicitly declined,
// including a caller-initiated cancellation confirmed to have had no side
// effect; any other error means the authority could not be reached or gave
// no decision.
type Authority interface {
	SignTx(ctx context.Context, req TxRequest) (*TxResult, error)
	SignCert(ctx context.Context, req CertRequest) (*CertResult, error)
}
