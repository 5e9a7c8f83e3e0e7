package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/greengrid/rectrade/internal/client/api"
	"github.com/greengrid/rectrade/internal/models"
)

// Whoami prints the current profile, or a hint when nobody is signed in.
func (a *App) Whoami(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		printlnFn("Not signed in.")
		return nil
	}

	printlnFn(fmt.Sprintf("%s %s <%s>", u.FirstName, u.LastName, u.Email))
	printlnFn(fmt.Sprintf("  role: %s, tier: %s, verification: %s", u.Role, u.Tier, u.VerificationStatus))
	printlnFn(fmt.Sprintf("  company: %s (%s)", u.Company, u.Emirate))
	printlnFn(fmt.Sprintf("  portfolio: %.2f AED, %.0f RECs", u.PortfolioValue, u.TotalRECs))
	return nil
}

// UpdateProfile prompts for new profile values and applies a partial update.
// An empty answer leaves that field unchanged.
func (a *App) UpdateProfile(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		printlnFn("Sign in first.")
		return nil
	}

	var upd api.ProfileUpdate

	read := func(prompt, current string, dst **string) error {
		v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s] (empty to keep)", prompt, current), os.Stdout)
		if err != nil {
			return err
		}
		if v != "" {
			*dst = &v
		}
		return nil
	}

	if err := read("First name", u.FirstName, &upd.FirstName); err != nil {
		return err
	}
	if err := read("Last name", u.LastName, &upd.LastName); err != nil {
		return err
	}
	if err := read("Company", u.Company, &upd.Company); err != nil {
		return err
	}
	if err := read("Emirate", u.Emirate, &upd.Emirate); err != nil {
		return err
	}

	change, err := getSimpleText(a.reader, "Change preferences? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if change == "y" || change == "Y" {
		prefs, err := a.readPreferences(u.Preferences)
		if err != nil {
			return err
		}
		upd.Preferences = &prefs
	}

	if err := a.session.UpdateProfile(ctx, upd); err != nil {
		printlnFn("Profile update failed:", err.Error())
		return nil
	}

	printlnFn("Profile updated.")
	return nil
}

// readPreferences prompts for each display preference, starting from the
// current values. Empty answers keep the current value.
func (a *App) readPreferences(current models.Preferences) (models.Preferences, error) {
	prefs := current

	v, err := getSimpleText(a.reader, fmt.Sprintf("Currency AED/USD [%s]", current.Currency), os.Stdout)
	if err != nil {
		return prefs, err
	}
	if v != "" {
		prefs.Currency = v
	}

	v, err = getSimpleText(a.reader, fmt.Sprintf("Language en/ar [%s]", current.Language), os.Stdout)
	if err != nil {
		return prefs, err
	}
	if v != "" {
		prefs.Language = v
	}

	readBool := func(prompt string, dst *bool) error {
		v, err := getSimpleText(a.reader, prompt+" (y/n, empty to keep)", os.Stdout)
		if err != nil {
			return err
		}
		switch v {
		case "y", "Y":
			*dst = true
		case "n", "N":
			*dst = false
		}
		return nil
	}

	if err := readBool("Notifications", &prefs.Notifications); err != nil {
		return prefs, err
	}
	if err := readBool("Dark mode", &prefs.DarkMode); err != nil {
		return prefs, err
	}
	if err := readBool("Compact layout", &prefs.CompactLayout); err != nil {
		return prefs, err
	}

	return prefs, nil
}
