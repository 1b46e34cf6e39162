// Package locale carries the user-facing message catalog for the badge and
// its alerts. Unknown keys and unsupported languages fall back to English.
package locale

import "strings"

// Supported languages.
const (
	LangEN = "en"
	LangHU = "hu"
	LangSK = "sk"
)

// Message keys.
const (
	KeyStart              = "start"
	KeyPause              = "pause"
	KeyStop               = "stop"
	KeySessionStopped     = "alert_session_stopped"
	KeyMissingCredentials = "alert_missing_credentials"
	KeyInvalidCredentials = "alert_invalid_credentials"
	KeyTimerNotActive     = "alert_timer_not_active"
	KeyDurationShort      = "alert_duration_short"
	KeyCommentError       = "alert_comment_error"
	KeyShareholderError   = "alert_shareholder_error"
	KeyConfirmSubmit      = "confirm_submit_report"
	KeyReportSuccess      = "alert_report_success"
	KeyReportIDMissing    = "alert_report_id_missing"
	KeyReportCancelled    = "alert_report_cancelled"
	KeyReportError        = "alert_report_error"
)

// Supported reports whether lang has a catalog.
func Supported(lang string) bool {
	_, ok := catalogs[lang]
	return ok
}

// Translator resolves message keys for one language.
type Translator struct {
	lang string
}

// NewTranslator returns a Translator for lang, falling back to English for
// unsupported languages.
func NewTranslator(lang string) *Translator {
	if !Supported(lang) {
		lang = LangEN
	}
	return &Translator{lang: lang}
}

// Lang returns the resolved language code.
func (t *Translator) Lang() string {
	return t.lang
}

// T resolves key and interpolates {name} placeholders from vars. An
// unknown key resolves to the key itself.
func (t *Translator) T(key string, vars map[string]string) string {
	str, ok := catalogs[t.lang][key]
	if !ok {
		str, ok = catalogs[LangEN][key]
	}
	if !ok {
		str = key
	}
	for k, v := range vars {
		str = strings.ReplaceAll(str, "{"+k+"}", v)
	}
	return str
}

var catalogs = map[string]map[string]string{
	LangEN: {
		KeyStart:              "Start",
		KeyPause:              "Pause",
		KeyStop:               "Stop",
		KeySessionStopped:     "Timer stopped. No report was sent.",
		KeyMissingCredentials: "Rovas API key or token is missing. Configure them before reporting.",
		KeyInvalidCredentials: "Rovas rejected the configured API keys. Check your credentials.",
		KeyTimerNotActive:     "A changeset was detected but the timer was never started. Nothing was reported.",
		KeyDurationShort:      "Measured duration is negligible; the report was discarded.",
		KeyCommentError:       "Could not fetch the changeset comment. A generic description will be used.",
		KeyShareholderError:   "Could not verify project participation on Rovas. The report was not sent.",
		KeyConfirmSubmit:      "Send a work report for changeset {id} covering {duration} minutes?",
		KeyReportSuccess:      "Work report created on Rovas with ID {id}.",
		KeyReportIDMissing:    "The report was likely created, but Rovas returned no report ID.",
		KeyReportCancelled:    "Submission cancelled. No report was sent.",
		KeyReportError:        "Report submission failed: {error}",
	},
	LangHU: {
		KeyStart:              "Indítás",
		KeyPause:              "Szünet",
		KeyStop:               "Leállítás",
		KeySessionStopped:     "Az időzítő leállt. Jelentés nem lett elküldve.",
		KeyMissingCredentials: "Hiányzik a Rovas API-kulcs vagy token. Állítsd be őket a jelentés előtt.",
		KeyInvalidCredentials: "A Rovas elutasította a beállított API-kulcsokat. Ellenőrizd az adataidat.",
		KeyTimerNotActive:     "Módosításcsomagot észleltünk, de az időzítő nem volt elindítva. Nem készült jelentés.",
		KeyDurationShort:      "A mért idő elhanyagolható, a jelentés elvetésre került.",
		KeyCommentError:       "Nem sikerült lekérni a módosításcsomag megjegyzését. Általános leírás lesz használva.",
		KeyShareholderError:   "Nem sikerült ellenőrizni a projektrészvételt a Rovason. A jelentés nem lett elküldve.",
		KeyConfirmSubmit:      "Elküldöd a(z) {id} módosításcsomag jelentését {duration} percről?",
		KeyReportSuccess:      "A munkajelentés létrejött a Rovason, azonosító: {id}.",
		KeyReportIDMissing:    "A jelentés valószínűleg létrejött, de a Rovas nem adott vissza azonosítót.",
		KeyReportCancelled:    "Küldés megszakítva. Jelentés nem lett elküldve.",
		KeyReportError:        "A jelentés küldése nem sikerült: {error}",
	},
	LangSK: {
		KeyStart:              "Štart",
		KeyPause:              "Pauza",
		KeyStop:               "Stop",
		KeySessionStopped:     "Časovač bol zastavený. Report nebol odoslaný.",
		KeyMissingCredentials: "Chýba Rovas API kľúč alebo token. Nastavte ich pred odoslaním reportu.",
		KeyInvalidCredentials: "Rovas odmietol nastavené API kľúče. Skontrolujte svoje údaje.",
		KeyTimerNotActive:     "Bol zistený changeset, ale časovač nebol spustený. Nič nebolo odoslané.",
		KeyDurationShort:      "Nameraný čas je zanedbateľný, report bol zahodený.",
		KeyCommentError:       "Nepodarilo sa načítať komentár changesetu. Použije sa všeobecný popis.",
		KeyShareholderError:   "Nepodarilo sa overiť účasť na projekte v Rovase. Report nebol odoslaný.",
		KeyConfirmSubmit:      "Odoslať report pre changeset {id} za {duration} minút?",
		KeyReportSuccess:      "Report bol vytvorený v Rovase s ID {id}.",
		KeyReportIDMissing:    "Report bol pravdepodobne vytvorený, ale Rovas nevrátil jeho ID.",
		KeyReportCancelled:    "Odoslanie zrušené. Report nebol odoslaný.",
		KeyReportError:        "Odoslanie reportu zlyhalo: {error}",
	},
}
