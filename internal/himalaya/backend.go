// Package himalaya builds the merged TOML configuration document
// consumed by the himalaya email CLI from declared accounts.
package himalaya

import "github.com/nhle/mailgen/internal/model"

// RetrievalBackend identifies which mail retrieval backend an account
// resolves to.
type RetrievalBackend string

const (
	RetrievalNotmuch RetrievalBackend = "notmuch"
	RetrievalIMAP    RetrievalBackend = "imap"
	RetrievalMaildir RetrievalBackend = "maildir"
	RetrievalNone    RetrievalBackend = "none"
)

// SendBackend identifies which mail submission backend an account
// resolves to.
type SendBackend string

const (
	SendSMTP     SendBackend = "smtp"
	SendSendmail SendBackend = "sendmail"
	SendNone     SendBackend = "none"
)

// Encryption modes understood by the CLI.
const (
	EncryptionNone     = "none"
	EncryptionTLS      = "tls"
	EncryptionStartTLS = "start-tls"
)

// ResolveRetrieval picks the account's retrieval backend. Priority is
// notmuch, then IMAP, then maildir; the first configured backend wins
// and the others are ignored even when present.
func ResolveRetrieval(a *model.Account) RetrievalBackend {
	switch {
	case a.Notmuch.Enable:
		return RetrievalNotmuch
	case a.IMAP != nil:
		return RetrievalIMAP
	case a.Maildir != nil:
		return RetrievalMaildir
	default:
		return RetrievalNone
	}
}

// ResolveSend picks the account's send backend. SMTP wins over
// sendmail when both are configured.
func ResolveSend(a *model.Account) SendBackend {
	switch {
	case a.SMTP != nil:
		return SendSMTP
	case a.Sendmail.Enable:
		return SendSendmail
	default:
		return SendNone
	}
}

// EncryptionMode maps the two TLS flags onto a single encryption tag.
// StartTLS is checked first and wins even when Enable is also set.
func EncryptionMode(tls model.TLSConfig) string {
	switch {
	case tls.StartTLS:
		return EncryptionStartTLS
	case tls.Enable:
		return EncryptionTLS
	default:
		return EncryptionNone
	}
}
