package models

// CapabilitiesDescriptor is the static description of everything this server
// can do. It is served through the capabilities:// resource and the HTTP
// /capabilities endpoint; producing it involves no file I/O.
type CapabilitiesDescriptor struct {
	Name               string             `json:"name"`
	Version            string             `json:"version"`
	Description        string             `json:"description"`
	DocumentOperations DocumentOperations `json:"document_operations"`
}

// DocumentOperations groups per-format capability flags.
type DocumentOperations struct {
	Word  WordCapabilities  `json:"word"`
	Excel ExcelCapabilities `json:"excel"`
	PDF   PDFCapabilities   `json:"pdf"`
}

// WordCapabilities lists supported Word document operations.
type WordCapabilities struct {
	Create         bool `json:"create"`
	Edit           bool `json:"edit"`
	ConvertFromTxt bool `json:"convert_from_txt"`
	ExtractText    bool `json:"extract_text"`
}

// ExcelCapabilities lists supported spreadsheet operations.
type ExcelCapabilities struct {
	Create         bool `json:"create"`
	Edit           bool `json:"edit"`
	ConvertFromCSV bool `json:"convert_from_csv"`
}

// PDFCapabilities lists supported PDF operations.
type PDFCapabilities struct {
	Create          bool `json:"create"`
	ConvertFromWord bool `json:"convert_from_word"`
}
