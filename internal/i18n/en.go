package i18n

// EnMessages English message catalog
var EnMessages = map[string]string{
	// UI - Panel titles
	"panel.camera":  "Camera",
	"panel.result":  "Current result",
	"panel.history": "History (offline)",

	// UI - Status
	"status.scanning":  "Scanning...",
	"status.paused":    "Paused",
	"status.expected":  "Expected",
	"status.torch_on":  "torch on",
	"status.torch_off": "torch off",
	"status.hint":      "Tip: keep the code centered and hold steady.",

	// Advisory
	"advisory.mismatch": "Detected value differs from the expected type",

	// Result card
	"result.empty":       "No code scanned yet.",
	"result.type":        "Type",
	"result.scanned_at":  "Scanned at",
	"result.action.open": "Open link",
	"result.action.mail": "Send email",
	"result.action.call": "Call",
	"result.wifi.ssid":   "Network",
	"result.wifi.pass":   "Password",
	"result.wifi.auth":   "Security",

	// History
	"history.empty":   "No scans yet.",
	"history.cleared": "History cleared",

	// Clipboard
	"copy.ok":     "Copied to clipboard",
	"copy.failed": "Copy failed",

	// Content type labels
	"content.label.url":      "URL",
	"content.label.whatsapp": "WhatsApp",
	"content.label.youtube":  "YouTube",
	"content.label.email":    "Email",
	"content.label.phone":    "Phone",
	"content.label.wifi":     "WiFi",
	"content.label.barcode":  "Barcode",
	"content.label.text":     "Text",

	// Content type descriptions
	"content.desc.url":      "Regular web link (HTTP/HTTPS).",
	"content.desc.whatsapp": "WhatsApp link: opens a chat, group or number.",
	"content.desc.youtube":  "YouTube link: opens a video.",
	"content.desc.email":    "Email address: you can send a message.",
	"content.desc.phone":    "Phone number: you can call or save the contact.",
	"content.desc.wifi":     "WiFi network configuration (SSID/password).",
	"content.desc.barcode":  "Product or inventory barcode.",
	"content.desc.text":     "Plain text (not a link).",

	// UI - Input
	"input.placeholder": "Scan or type a code, Enter to decode",

	// UI - Keybindings (TUI)
	"keys.pause":         "ctrl+p pause",
	"keys.resume":        "ctrl+r resume",
	"keys.type":          "ctrl+t type",
	"keys.copy":          "ctrl+y copy",
	"keys.clear":         "ctrl+x clear",
	"keys.clear_history": "ctrl+d clear history",
	"keys.torch":         "ctrl+f torch",
	"keys.select":        "↑/↓ select",
	"keys.quit":          "ctrl+c quit",

	// Line mode
	"line.accepted":        "✓ %s: %s",
	"line.mismatch":        "⚠ %s",
	"line.ignored":         "paused, /resume to scan again",
	"line.unknown_command": "unknown command: %s (try /help)",
	"line.history_empty":   "history is empty",
	"line.expected":        "expected type: %s",
	"line.saved_default":   "saved %s as the project default",
	"line.torch_na":        "torch not available",
	"line.help": `Commands:
  /pause              stop scanning
  /resume             scan again
  /type <type>        expected type (url, whatsapp, youtube, email, phone, wifi, barcode, text)
  /default <type>     save the expected type in ./.qrscan/config.json
  /copy [n]           copy the current result or history entry n
  /open               print the action link of the current result
  /clear              clear the current result
  /clear-history      erase the history
  /history            list the history
  /torch              toggle the torch
  /quit               exit
Any other line is treated as a decoded code.`,

	// Errors
	"error.storage": "Storage error: %s",
}
