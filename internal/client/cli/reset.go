package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrijs2005/mochamagic/internal/client/services"
)

// Reset erases everything the storefront has stored, after asking.
func (a *App) Reset(ctx context.Context) error {
	all, err := a.store.List(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(a.out, "Nothing is stored.")
		return nil
	}

	keys := slices.Sorted(maps.Keys(all))
	question := fmt.Sprintf("Erase %d stored records (%s)?", len(keys), strings.Join(keys, ", "))
	ok, err := Confirm(a.reader, question, a.out)
	if err != nil || !ok {
		return err
	}

	if err := a.store.Clear(ctx); err != nil {
		return err
	}
	a.log.Info(ctx, "storefront data erased", "records", len(keys))
	fmt.Fprintln(a.out, "All storefront data erased.")
	a.Navigate(services.PageHome, 0)
	return nil
}
