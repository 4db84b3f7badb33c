package thorlink

import (
	"github.com/vireolabs/thorlink/signing"
)

// Vendor is the signer-facing facade: it opens single-use signing sessions
// against an external signing authority. The vendor itself is stateless and
// safe to share; the sessions it creates are not.
type Vendor struct {
	authority signing.Authority
}

// NewVendor builds a vendor over the given signing authority.
func NewVendor(authority signing.Authority) *Vendor {
	return &Vendor{authority: authority}
}

// SignTx opens a transaction signing session.
func (v *Vendor) SignTx() *signing.TxSession {
	return signing.NewTxSession(v.authority)
}

// SignCert opens a certificate signing session.
func (v *Vendor) SignCert() *signing.CertSession {
	return signing.NewCertSession(v.authority)
}
