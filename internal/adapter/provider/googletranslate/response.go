package googletranslate

// apiResponse mirrors the Google Translate v2 response envelope.
type apiResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}
