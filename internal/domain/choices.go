package domain

// Choice is a stored code with its display label.
type Choice struct {
	Code  string
	Label string
}

var (
	SexChoices = []Choice{{"H", "H"}, {"M", "M"}}

	MaritalStatusChoices = []Choice{
		{"SOLTERO", "Soltero/a"},
		{"CASADO", "Casado/a"},
		{"DIVORCIADO", "Divorciado/a"},
		{"VIUDO", "Viudo/a"},
		{"UNION_LIBRE", "Unión libre"},
	}

	DriverLicenseChoices = []Choice{
		{"A", "Tipo A"}, {"A1", "Tipo A1"}, {"B", "Tipo B"},
		{"C", "Tipo C"}, {"C1", "Tipo C1"}, {"D", "Tipo D"},
		{"E", "Tipo E"}, {"F", "Tipo F"}, {"G", "Tipo G"},
	}

	AcademicClassifierChoices = []Choice{
		{"ARTICULO", "Artículo"},
		{"TESIS", "Tesis"},
		{"INVESTIGACION", "Investigación"},
		{"PROYECTO", "Proyecto"},
		{"PONENCIA", "Ponencia"},
		{"POSTER", "Póster"},
		{"LIBRO", "Libro / Capítulo"},
		{"ENSAYO", "Ensayo"},
		{"INFORME", "Informe"},
		{"OTRO", "Otro"},
	}

	RecognitionTypeChoices = []Choice{
		{"ACADEMICO", "Académico"},
		{"PUBLICO", "Público"},
		{"PRIVADO", "Privado"},
	}

	ConditionChoices = []Choice{{"BUENO", "Bueno"}, {"REGULAR", "Regular"}}
)

// Label returns the display label for code, or code itself when unknown.
func Label(choices []Choice, code string) string {
	for _, c := range choices {
		if c.Code == code {
			return c.Label
		}
	}
	return code
}

// HasChoice reports whether code is one of choices.
func HasChoice(choices []Choice, code string) bool {
	for _, c := range choices {
		if c.Code == code {
			return true
		}
	}
	return false
}

// CategoryChoices returns the category enumeration an entry of s uses, if any.
func CategoryChoices(s Section) []Choice {
	switch s {
	case SectionAcademic:
		return AcademicClassifierChoices
	case SectionRecognitions:
		return RecognitionTypeChoices
	}
	return nil
}
