package telegram

// UI texts in English
const (
	helpText = "🤖 Funding rate monitor\n\n" +
		"Available commands:\n" +
		"/help - show this message\n" +
		"/add SYMBOL - add a coin to monitor (e.g. /add BTC)\n" +
		"/remove SYMBOL - stop monitoring a coin (e.g. /remove BTC)\n" +
		"/list - show monitored coins\n" +
		"/check - fetch funding rates now\n"

	adminHelpText = "\nAdmin commands:\n" +
		"/userlist - list all registered users\n" +
		"/send USER_ID TEXT - message a single user\n" +
		"/markdown USER_ID TEXT - message with Markdown formatting\n" +
		"/schedule YYYY-MM-DD HH:MM USER_ID TEXT - schedule a message\n" +
		"Attach a photo or file with caption /send USER_ID to relay media"

	welcomeFmt = "👋 Hi! I monitor perp funding rates.\n\n" +
		"Every hour I check the funding rates of your coins and send you a report.\n" +
		"Default coins: %s\n\n" +
		"Type /help to see all commands."

	addUsageText = "⚠️ Usage: /add SYMBOL\nExample: /add BTC"

	removeUsageText = "⚠️ Usage: /remove SYMBOL\nExample: /remove BTC"

	sendUsageText = "Usage: /send USER_ID message\nExample: /send 123456789 hello!"

	markdownUsageText = "Usage: /markdown USER_ID message\n" +
		"Supported formatting:\n" +
		"- *bold*\n" +
		"- _italic_\n" +
		"- `code`\n" +
		"- [link title](url)"

	scheduleUsageText = "Usage: /schedule YYYY-MM-DD HH:MM USER_ID message\n" +
		"Example: /schedule 2024-11-01 14:30 123456789 hello"

	emptyListText = "ℹ️ You are not monitoring any coins yet.\n" +
		"Use /add SYMBOL to start."

	checkingText = "🔍 Checking funding rates..."

	adminMessagePrefix = "📩 Admin message:\n\n"
)
