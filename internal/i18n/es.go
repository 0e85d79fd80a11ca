package i18n

// EsMessages catálogo en español
var EsMessages = map[string]string{
	"panel.camera":  "Cámara",
	"panel.result":  "Resultado actual",
	"panel.history": "Historial (offline)",

	"status.scanning":  "Escaneando...",
	"status.paused":    "En pausa",
	"status.expected":  "Esperado",
	"status.torch_on":  "linterna encendida",
	"status.torch_off": "linterna apagada",
	"status.hint":      "Consejo: acerca el código al centro del recuadro y mantén el móvil firme.",

	"advisory.mismatch": "Se detectó un valor diferente al especificado",

	"result.empty":       "Aún no se ha escaneado ningún código.",
	"result.type":        "Tipo",
	"result.scanned_at":  "Escaneado",
	"result.action.open": "Abrir enlace",
	"result.action.mail": "Enviar correo",
	"result.action.call": "Llamar",
	"result.wifi.ssid":   "Red",
	"result.wifi.pass":   "Clave",
	"result.wifi.auth":   "Seguridad",

	"history.empty":   "Sin escaneos todavía.",
	"history.cleared": "Historial borrado",

	"copy.ok":     "Copiado al portapapeles",
	"copy.failed": "No se pudo copiar",

	"content.label.url":      "URL",
	"content.label.whatsapp": "WhatsApp",
	"content.label.youtube":  "YouTube",
	"content.label.email":    "Correo",
	"content.label.phone":    "Teléfono",
	"content.label.wifi":     "WiFi",
	"content.label.barcode":  "Barras",
	"content.label.text":     "Texto",

	"content.desc.url":      "Enlace web normal (HTTP/HTTPS).",
	"content.desc.whatsapp": "Enlace de WhatsApp: abrirá un chat, grupo o número.",
	"content.desc.youtube":  "Enlace de YouTube: abrirá un video.",
	"content.desc.email":    "Dirección de correo: puedes enviar un email.",
	"content.desc.phone":    "Número de teléfono: puedes llamar o guardar el contacto.",
	"content.desc.wifi":     "Configuración de red WiFi (SSID/clave).",
	"content.desc.barcode":  "Código de barras de producto o inventario.",
	"content.desc.text":     "Texto plano (no es enlace).",

	"input.placeholder": "Escanea o escribe un código, Enter para decodificar",

	"keys.pause":         "ctrl+p pausar",
	"keys.resume":        "ctrl+r reanudar",
	"keys.type":          "ctrl+t tipo",
	"keys.copy":          "ctrl+y copiar",
	"keys.clear":         "ctrl+x limpiar",
	"keys.clear_history": "ctrl+d borrar historial",
	"keys.torch":         "ctrl+f linterna",
	"keys.select":        "↑/↓ elegir",
	"keys.quit":          "ctrl+c salir",

	"line.accepted":        "✓ %s: %s",
	"line.mismatch":        "⚠ %s",
	"line.ignored":         "en pausa, /resume para escanear de nuevo",
	"line.unknown_command": "comando desconocido: %s (prueba /help)",
	"line.history_empty":   "el historial está vacío",
	"line.expected":        "tipo esperado: %s",
	"line.saved_default":   "%s guardado como valor por defecto del proyecto",
	"line.torch_na":        "linterna no disponible",

	"error.storage": "Error de almacenamiento: %s",
}
