package subscription

import (
	"fmt"
	"time"

	"github.com/zt6453928/lunatv-enhanced/config"
)

// Refresh pulls the subscribed config file and merges it into the current
// document. The raw payload is stored verbatim so later reconciliations
// can re-parse it; LastCheck is bumped even when the payload turns out to
// be malformed, since the fetch itself succeeded.
func Refresh(st config.Store) error {
	cfg := config.Get(st)
	if cfg.ConfigSubscription.URL == "" {
		return fmt.Errorf("no subscription URL configured")
	}

	raw, err := Fetch(cfg.ConfigSubscription.URL)
	if err != nil {
		return err
	}

	cfg.ConfigFile = raw
	cfg.ConfigSubscription.LastCheck = time.Now().Format(time.RFC3339)
	config.Reconcile(cfg, config.ParseSubscription(raw))

	return st.SaveDocument(cfg)
}
