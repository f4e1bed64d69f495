package domain

// Language is one row of the supported-languages registry.
// Active=false hides a language from public listing without deleting
// its translations.
type Language struct {
	LangCode   string `json:"lang_code"`
	LangName   string `json:"lang_name"`
	NativeName string `json:"native_name"`
	FlagIcon   string `json:"flag_icon"`
	RTL        bool   `json:"rtl"`
	Active     bool   `json:"active"`
	SortOrder  int    `json:"sort_order"`
}
