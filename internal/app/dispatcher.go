package app

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/zombocoder/vaultura/internal/generator"
	"github.com/zombocoder/vaultura/internal/logging"
	"github.com/zombocoder/vaultura/internal/platform"
	"github.com/zombocoder/vaultura/internal/totp"
	"github.com/zombocoder/vaultura/internal/vault"
)

// ErrThrottled is returned when unlock attempts come faster than the
// limiter allows. It deliberately reveals nothing about the password.
var ErrThrottled = errors.New("app: too many unlock attempts, slow down")

// ErrNoStoredPassword is returned when an empty-password unlock finds
// nothing in the OS keyring.
var ErrNoStoredPassword = errors.New("app: no password stored in keyring")

const (
	unlockInterval = 2 * time.Second
	unlockBurst    = 5
)

// Options configure a Dispatcher. Zero values give a working dispatcher
// with no clipboard clear and no keyring.
type Options struct {
	ClipboardTTL time.Duration
	UseKeyring   bool
}

// Dispatcher executes intents against the vault service, persists after
// every mutation and logs what happened. It is driven by the single UI
// event loop and needs no locking of its own.
type Dispatcher struct {
	svc      *vault.Service
	clip     platform.Clipboard
	keychain platform.Keychain
	log      logging.Logger
	opts     Options

	// unlock attempts share one token bucket; the vault has one user.
	unlockLimiter *rate.Limiter
}

func NewDispatcher(svc *vault.Service, clip platform.Clipboard, keychain platform.Keychain, log logging.Logger, opts Options) *Dispatcher {
	if clip == nil {
		clip = platform.NopClipboard{}
	}
	if log == nil {
		log = logging.NopLogger{}
	}
	return &Dispatcher{
		svc:           svc,
		clip:          clip,
		keychain:      keychain,
		log:           log,
		opts:          opts,
		unlockLimiter: rate.NewLimiter(rate.Every(unlockInterval), unlockBurst),
	}
}

func (d *Dispatcher) Service() *vault.Service { return d.svc }

// Dispatch runs one intent to completion. Mutating intents save the vault
// before returning, so a reported success is on disk.
func (d *Dispatcher) Dispatch(intent Intent) (Outcome, error) {
	start := time.Now()
	out, err := d.dispatch(intent)
	if err != nil {
		d.log.Warn("intent failed",
			logging.String("intent", intent.name()),
			logging.Err(err),
			logging.Duration(time.Since(start)))
		return Outcome{}, err
	}
	d.log.Info("intent handled",
		logging.String("intent", intent.name()),
		logging.Duration(time.Since(start)))
	return out, nil
}

func (d *Dispatcher) dispatch(intent Intent) (Outcome, error) {
	switch in := intent.(type) {
	case CreateVault:
		return d.createVault(in)
	case UnlockVault:
		return d.unlockVault(in)
	case LockVault:
		d.clip.Clear()
		if d.svc.IsUnlocked() && d.svc.IsDirty() {
			if err := d.svc.Save(); err != nil {
				return Outcome{}, err
			}
		}
		d.svc.Lock()
		return Outcome{Message: "vault locked"}, nil
	case SaveVault:
		if err := d.svc.Save(); err != nil {
			return Outcome{}, err
		}
		return Outcome{Message: "vault saved"}, nil

	case AddGroup:
		g, err := d.svc.AddGroup(in.Name, in.Parent)
		if err != nil {
			return Outcome{}, err
		}
		if err := d.svc.Save(); err != nil {
			return Outcome{}, err
		}
		return Outcome{Message: fmt.Sprintf("group %q added", g.Name), Group: &g}, nil
	case EditGroup:
		if err := d.svc.EditGroup(in.ID, in.Name, in.Parent); err != nil {
			return Outcome{}, err
		}
		if err := d.svc.Save(); err != nil {
			return Outcome{}, err
		}
		return Outcome{Message: "group updated"}, nil
	case DeleteGroup:
		if err := d.svc.DeleteGroup(in.ID); err != nil {
			return Outcome{}, err
		}
		if err := d.svc.Save(); err != nil {
			return Outcome{}, err
		}
		return Outcome{Message: "group and its items deleted"}, nil

	case AddItem:
		it, err := d.svc.AddItem(in.Draft)
		if err != nil {
			return Outcome{}, err
		}
		if err := d.svc.Save(); err != nil {
			return Outcome{}, err
		}
		return Outcome{Message: fmt.Sprintf("item %q added", it.Title), Item: &it}, nil
	case EditItem:
		if err := d.svc.EditItem(in.ID, in.Draft); err != nil {
			return Outcome{}, err
		}
		if err := d.svc.Save(); err != nil {
			return Outcome{}, err
		}
		return Outcome{Message: "item updated"}, nil
	case DeleteItem:
		if err := d.svc.DeleteItem(in.ID); err != nil {
			return Outcome{}, err
		}
		if err := d.svc.Save(); err != nil {
			return Outcome{}, err
		}
		return Outcome{Message: "item deleted"}, nil

	case SearchItems:
		var (
			items []vault.Item
			err   error
		)
		if in.Group != nil {
			items, err = d.svc.SearchInGroup(in.Query, in.Group)
		} else {
			items, err = d.svc.Search(in.Query)
		}
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Items: items}, nil

	case ImportVault:
		merged, err := d.svc.Import(in.Path, []byte(in.Password))
		if err != nil {
			return Outcome{}, err
		}
		if merged > 0 {
			if err := d.svc.Save(); err != nil {
				return Outcome{}, err
			}
		}
		return Outcome{Message: fmt.Sprintf("imported %d entries", merged), Merged: merged}, nil
	case ExportVault:
		if err := d.svc.Export(in.Path, []byte(in.Password)); err != nil {
			return Outcome{}, err
		}
		return Outcome{Message: fmt.Sprintf("exported to %s", in.Path)}, nil

	case GeneratePassword:
		pw, err := generator.Generate(in.Options)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Password: pw}, nil

	case CopySecret:
		it, err := d.svc.Item(in.ID)
		if err != nil {
			return Outcome{}, err
		}
		if err := d.clip.Set(it.Password, d.opts.ClipboardTTL); err != nil {
			return Outcome{}, fmt.Errorf("app: clipboard: %w", err)
		}
		return Outcome{Message: "password copied"}, nil
	case CopyUsername:
		it, err := d.svc.Item(in.ID)
		if err != nil {
			return Outcome{}, err
		}
		if err := d.clip.Set(it.Username, 0); err != nil {
			return Outcome{}, fmt.Errorf("app: clipboard: %w", err)
		}
		return Outcome{Message: "username copied"}, nil
	case CopyTOTP:
		it, err := d.svc.Item(in.ID)
		if err != nil {
			return Outcome{}, err
		}
		code, err := totp.Code(it.TOTPSecret, time.Now())
		if err != nil {
			return Outcome{}, err
		}
		if err := d.clip.Set(code, d.opts.ClipboardTTL); err != nil {
			return Outcome{}, fmt.Errorf("app: clipboard: %w", err)
		}
		return Outcome{Message: "one-time code copied"}, nil

	default:
		return Outcome{}, fmt.Errorf("app: unknown intent %T", intent)
	}
}

func (d *Dispatcher) createVault(in CreateVault) (Outcome, error) {
	if err := d.svc.Create([]byte(in.Password)); err != nil {
		return Outcome{}, err
	}
	d.storeInKeyring(in.Password)
	return Outcome{Message: "vault created"}, nil
}

func (d *Dispatcher) unlockVault(in UnlockVault) (Outcome, error) {
	if !d.unlockLimiter.Allow() {
		return Outcome{}, ErrThrottled
	}

	password := in.Password
	if password == "" {
		if d.keychain == nil {
			return Outcome{}, ErrNoStoredPassword
		}
		stored, err := d.keychain.Load(d.svc.Path())
		if err != nil {
			return Outcome{}, ErrNoStoredPassword
		}
		password = stored
	}

	if err := d.svc.Unlock([]byte(password)); err != nil {
		return Outcome{}, err
	}
	if in.Password != "" {
		d.storeInKeyring(in.Password)
	}
	return Outcome{Message: "vault unlocked"}, nil
}

// storeInKeyring is best effort; a missing credential store never blocks
// an unlock that already succeeded.
func (d *Dispatcher) storeInKeyring(password string) {
	if !d.opts.UseKeyring || d.keychain == nil {
		return
	}
	if err := d.keychain.Store(d.svc.Path(), password); err != nil {
		d.log.Warn("keyring store failed", logging.Err(err))
	}
}
