package himalaya

import (
	"strings"

	"github.com/nhle/mailgen/internal/attrs"
	"github.com/nhle/mailgen/internal/model"
)

// sendmailCmd is the invocation path used for sendmail-backed accounts.
const sendmailCmd = "/usr/sbin/sendmail"

// PasswordCommand returns the command line the CLI runs to obtain a
// password. Explicit tokens are joined with single spaces and trusted
// verbatim; when none are given but a keyring key is declared, the
// command reads the key back through `mailgen secret get`.
func PasswordCommand(tokens []string, keyringKey string) string {
	if len(tokens) == 0 && keyringKey != "" {
		tokens = []string{"mailgen", "secret", "get", keyringKey}
	}
	return strings.Join(tokens, " ")
}

// BuildAccount assembles the configuration table for a single account.
// Backend blocks are present only for the resolved backends; fields
// without a value are pruned rather than emitted as nulls. The
// account's freeform settings override is deep-merged last and wins on
// every key it touches.
func BuildAccount(a *model.Account, notmuchDatabasePath string) attrs.Tree {
	t := attrs.Tree{
		"email":        a.Address,
		"display-name": stringOrNil(a.DisplayName),
		"default":      a.Primary,
		"folder-aliases": attrs.Tree{
			"inbox":  stringOrNil(a.Folders.Inbox),
			"sent":   stringOrNil(a.Folders.Sent),
			"drafts": stringOrNil(a.Folders.Drafts),
			"trash":  stringOrNil(a.Folders.Trash),
		},
	}

	if a.Signature.Show == model.SignatureShowAppend {
		t["signature"] = a.Signature.Text
		t["signature-delim"] = a.Signature.Delimiter
	}

	switch ResolveRetrieval(a) {
	case RetrievalNotmuch:
		t["backend"] = string(RetrievalNotmuch)
		t["notmuch"] = attrs.Tree{
			// The shared database path: notmuch indexes the whole mail
			// store, not one account's maildir.
			"database-path": notmuchDatabasePath,
		}
	case RetrievalIMAP:
		t["backend"] = string(RetrievalIMAP)
		t["imap"] = attrs.Tree{
			"host":       a.IMAP.Host,
			"port":       portOrNil(a.IMAP.Port),
			"encryption": EncryptionMode(a.IMAP.TLS),
			"login":      a.IMAP.Login,
			"passwd-cmd": PasswordCommand(a.IMAP.PasswordCommand, a.IMAP.KeyringKey),
		}
	case RetrievalMaildir:
		t["backend"] = string(RetrievalMaildir)
		t["maildir"] = attrs.Tree{
			"root-dir": a.Maildir.Path,
		}
	}

	switch ResolveSend(a) {
	case SendSMTP:
		t["sender"] = string(SendSMTP)
		t["smtp"] = attrs.Tree{
			"host":       a.SMTP.Host,
			"port":       portOrNil(a.SMTP.Port),
			"encryption": EncryptionMode(a.SMTP.TLS),
			"login":      a.SMTP.Login,
			"passwd-cmd": PasswordCommand(a.SMTP.PasswordCommand, a.SMTP.KeyringKey),
		}
	case SendSendmail:
		t["sender"] = string(SendSendmail)
		t["sendmail"] = attrs.Tree{
			"cmd": sendmailCmd,
		}
	}

	base := attrs.Prune(t)
	if len(a.Settings) == 0 {
		return base
	}

	override := attrs.Normalize(attrs.Tree(a.Settings)).(attrs.Tree)
	return attrs.Prune(attrs.Merge(base, override))
}

// stringOrNil turns the empty string into nil so that Prune drops the
// enclosing key.
func stringOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// portOrNil turns an unset port into nil so that Prune drops the key
// instead of emitting port = 0.
func portOrNil(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
