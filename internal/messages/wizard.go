package messages

// Wizard prompts and notices.
const (
	WizardRequiresTerminal   = "the configuration wizard requires an interactive terminal; pass --config instead"
	WizardPromptFailedFmt    = "wizard prompt failed: %w"
	WizardHintBack           = "back"
	WizardHintExit           = "exit"
	WizardExitWithoutChanges = "Exited without changes."
	WizardExitPrompt         = "Exit the setup wizard?"
	WizardSource             = "wizard"

	WizardProviderTitle        = "Which LLM provider should Lethe use?"
	WizardAuthModeTitle        = "How should Lethe authenticate with Anthropic?"
	WizardAuthModeSubscription = "Claude subscription token"
	WizardAuthModeAPIKey       = "Anthropic API key"
	WizardEnterFmt             = "Enter your %s"
	WizardRequiredTitle        = "Required"
	WizardRequiredFmt          = "%s cannot be empty."
	WizardModelLabel           = "main model"
	WizardAuxModelLabel        = "auxiliary model"
	WizardAPIBaseTitle         = "Custom API base URL (leave empty for the provider default)"
	WizardTelegramTokenLabel   = "Telegram bot token"
	WizardTelegramUserLabel    = "Telegram user ID allowed to talk to the bot"

	WizardReviewTitle          = "Review settings"
	WizardReviewConfirm        = "Install with these settings?"
	WizardSummaryProviderFmt   = "Provider:   %s\n"
	WizardSummaryAuthFmt       = "Auth mode:  %s\n"
	WizardSummaryModelFmt      = "Models:     %s / %s\n"
	WizardSummaryAPIBaseFmt    = "API base:   %s\n"
	WizardSummaryCredentialFmt = "Credential: %s=%s\n"
	WizardSummaryTelegramFmt   = "Telegram:   token %s, user %s\n"
)
