package finder

import (
	"context"
	"fmt"
	"time"
)

// DismissConsent waits delay for the consent overlay to appear and clicks
// the accept button if it is visible. An absent button is not an error.
func DismissConsent(ctx context.Context, page Page, acceptSelector string, delay time.Duration) error {
	if acceptSelector == "" {
		return nil
	}
	if err := page.Sleep(ctx, delay); err != nil {
		return err
	}
	visible, err := page.Visible(ctx, acceptSelector)
	if err != nil {
		return fmt.Errorf("checking consent button: %w", err)
	}
	if !visible {
		return nil
	}
	if err := page.Click(ctx, acceptSelector); err != nil {
		return fmt.Errorf("accepting consent: %w", err)
	}
	return nil
}
