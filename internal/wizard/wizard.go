// Package wizard collects an install configuration interactively.
package wizard

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/conn-castle/lethe-installer/internal/agentenv"
	"github.com/conn-castle/lethe-installer/internal/config"
	"github.com/conn-castle/lethe-installer/internal/messages"
)

var (
	// ErrBack is returned by a UI prompt when the user asks for the previous step.
	ErrBack = errors.New("wizard back requested")
	// ErrCancelled is returned by a UI prompt when the user exits the wizard.
	ErrCancelled = errors.New("wizard cancelled")
)

type step int

const (
	stepProvider step = iota
	stepAuthMode
	stepCredential
	stepModels
	stepAPIBase
	stepTelegram
	stepReview
)

// Run walks the user through every configuration field starting from defaults.
// ok is false when the user leaves the wizard; a notice is written to out.
func Run(ui UI, defaults config.InstallConfiguration, out io.Writer) (cfg config.InstallConfiguration, ok bool, err error) {
	cfg = defaults
	if !cfg.Provider.Valid() {
		cfg.Provider = config.ProviderOpenRouter
	}

	current := stepProvider
	for current <= stepReview {
		snapshot := cfg
		var done bool
		switch current {
		case stepProvider:
			err = promptProvider(ui, &cfg)
		case stepAuthMode:
			err = promptAuthMode(ui, &cfg)
		case stepCredential:
			done, err = promptRequired(ui, true, cfg.Provider.CredentialLabel(cfg.AnthropicAuthMode), &cfg.APIKey)
		case stepModels:
			done, err = promptModels(ui, &cfg)
		case stepAPIBase:
			err = ui.Input(messages.WizardAPIBaseTitle, &cfg.APIBase)
		case stepTelegram:
			done, err = promptTelegram(ui, &cfg)
		case stepReview:
			var confirmed bool
			confirmed, err = review(ui, cfg)
			if err == nil && !confirmed {
				err = ErrCancelled
			}
		}
		if current == stepProvider || current == stepAuthMode || current == stepAPIBase || current == stepReview {
			done = err == nil
		}

		switch {
		case err == nil && done:
			current = next(current, cfg)
		case err == nil:
			// A required field was left empty; ask again.
		case errors.Is(err, ErrBack):
			cfg = snapshot
			if current == stepProvider {
				leave, confirmErr := confirmExit(ui)
				if confirmErr != nil {
					return cfg, false, confirmErr
				}
				if leave {
					return exitWithoutChanges(defaults, out)
				}
				continue
			}
			current = prev(current, cfg)
		case errors.Is(err, ErrCancelled):
			return exitWithoutChanges(defaults, out)
		default:
			return cfg, false, err
		}
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(messages.WizardSource); err != nil {
		return cfg, false, err
	}
	return cfg, true, nil
}

func exitWithoutChanges(defaults config.InstallConfiguration, out io.Writer) (config.InstallConfiguration, bool, error) {
	_, _ = fmt.Fprintln(out, messages.WizardExitWithoutChanges)
	return defaults, false, nil
}

// skipped reports whether s has nothing to ask for cfg.
func skipped(s step, cfg config.InstallConfiguration) bool {
	switch s {
	case stepAuthMode:
		return cfg.Provider != config.ProviderAnthropic
	case stepModels:
		return cfg.UsesFixedModels()
	default:
		return false
	}
}

func next(s step, cfg config.InstallConfiguration) step {
	s++
	for s < stepReview && skipped(s, cfg) {
		s++
	}
	return s
}

func prev(s step, cfg config.InstallConfiguration) step {
	s--
	for s > stepProvider && skipped(s, cfg) {
		s--
	}
	return s
}

func promptProvider(ui UI, cfg *config.InstallConfiguration) error {
	options := make([]Option, 0, len(config.Providers()))
	for _, p := range config.Providers() {
		options = append(options, Option{Label: p.DisplayName(), Value: string(p)})
	}
	value := string(cfg.Provider)
	if err := ui.Select(messages.WizardProviderTitle, options, &value); err != nil {
		return err
	}
	provider, err := config.ParseProvider(value)
	if err != nil {
		return err
	}
	if provider != cfg.Provider {
		// Models and credentials do not carry across providers.
		cfg.Model = provider.DefaultModel()
		cfg.AuxModel = provider.DefaultAuxModel()
		cfg.APIKey = ""
	}
	cfg.Provider = provider
	return nil
}

func promptAuthMode(ui UI, cfg *config.InstallConfiguration) error {
	value := string(cfg.AnthropicAuthMode)
	if value == "" {
		value = string(config.AuthModeSubscriptionToken)
	}
	options := []Option{
		{Label: messages.WizardAuthModeSubscription, Value: string(config.AuthModeSubscriptionToken)},
		{Label: messages.WizardAuthModeAPIKey, Value: string(config.AuthModeAPIKey)},
	}
	if err := ui.Select(messages.WizardAuthModeTitle, options, &value); err != nil {
		return err
	}
	mode, err := config.ParseAuthMode(value)
	if err != nil {
		return err
	}
	if mode != cfg.AnthropicAuthMode {
		cfg.APIKey = ""
	}
	cfg.AnthropicAuthMode = mode
	if !cfg.UsesFixedModels() && (cfg.Model == config.SubscriptionModel || cfg.Model == "") {
		cfg.Model = cfg.Provider.DefaultModel()
		cfg.AuxModel = cfg.Provider.DefaultAuxModel()
	}
	return nil
}

// promptRequired asks for label and reports false after showing a notice
// when the answer is blank.
func promptRequired(ui UI, secret bool, label string, value *string) (bool, error) {
	title := fmt.Sprintf(messages.WizardEnterFmt, label)
	var err error
	if secret {
		err = ui.SecretInput(title, value)
	} else {
		err = ui.Input(title, value)
	}
	if err != nil {
		return false, err
	}
	*value = strings.TrimSpace(*value)
	if *value != "" {
		return true, nil
	}
	if err := ui.Note(messages.WizardRequiredTitle, fmt.Sprintf(messages.WizardRequiredFmt, label)); err != nil && !errors.Is(err, ErrBack) {
		return false, err
	}
	return false, nil
}

func promptModels(ui UI, cfg *config.InstallConfiguration) (bool, error) {
	done, err := promptRequired(ui, false, messages.WizardModelLabel, &cfg.Model)
	if err != nil || !done {
		return false, err
	}
	return promptRequired(ui, false, messages.WizardAuxModelLabel, &cfg.AuxModel)
}

func promptTelegram(ui UI, cfg *config.InstallConfiguration) (bool, error) {
	done, err := promptRequired(ui, true, messages.WizardTelegramTokenLabel, &cfg.TelegramBotToken)
	if err != nil || !done {
		return false, err
	}
	return promptRequired(ui, false, messages.WizardTelegramUserLabel, &cfg.TelegramUserID)
}

// Summary renders cfg for review with secrets masked.
func Summary(cfg config.InstallConfiguration) string {
	cfg = cfg.WithDefaults()
	var b strings.Builder
	fmt.Fprintf(&b, messages.WizardSummaryProviderFmt, cfg.Provider.DisplayName())
	if cfg.Provider == config.ProviderAnthropic {
		fmt.Fprintf(&b, messages.WizardSummaryAuthFmt, cfg.AnthropicAuthMode)
	}
	fmt.Fprintf(&b, messages.WizardSummaryModelFmt, cfg.Model, cfg.AuxModel)
	if cfg.APIBase != "" {
		fmt.Fprintf(&b, messages.WizardSummaryAPIBaseFmt, cfg.APIBase)
	}
	fmt.Fprintf(&b, messages.WizardSummaryCredentialFmt, cfg.AuthEnvName(), agentenv.Mask(cfg.APIKey))
	fmt.Fprintf(&b, messages.WizardSummaryTelegramFmt, agentenv.Mask(cfg.TelegramBotToken), cfg.TelegramUserID)
	return b.String()
}

func review(ui UI, cfg config.InstallConfiguration) (bool, error) {
	if err := ui.Note(messages.WizardReviewTitle, Summary(cfg)); err != nil {
		return false, err
	}
	confirmed := true
	if err := ui.Confirm(messages.WizardReviewConfirm, &confirmed); err != nil {
		return false, err
	}
	return confirmed, nil
}

func confirmExit(ui UI) (bool, error) {
	leave := true
	if err := ui.Confirm(messages.WizardExitPrompt, &leave); err != nil {
		if errors.Is(err, ErrBack) {
			return false, nil
		}
		if errors.Is(err, ErrCancelled) {
			return true, nil
		}
		return false, err
	}
	return leave, nil
}
