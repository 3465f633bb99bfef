package catalog

// defaultSchema is the catalog generated when no configuration file exists
// yet: one single-response form, one multi-response form, and the default
// message table.
func defaultSchema() fileSchema {
	return fileSchema{
		Forms: map[string]formSchema{
			"single_response_form": {
				Name:                   "single_response_form",
				AllowMultipleResponses: false,
				ReturnAnswers:          true,
				Command:                "single_response",
				Questions: []questionSchema{
					{ID: "1", Text: "What is your name?"},
					{ID: "2", Text: "How old are you?"},
				},
			},
			"multiple_responses_form": {
				Name:                   "multiple_responses_form",
				AllowMultipleResponses: true,
				ReturnAnswers:          true,
				Command:                "multiple_responses",
				Questions: []questionSchema{
					{ID: "1", Text: "What is your favorite color?"},
					{ID: "2", Text: "What is your favorite food?"},
					{ID: "3", Text: "What is your favorite hobby?"},
				},
			},
		},
		Messages: defaultMessages(),
	}
}

func defaultMessages() map[string]string {
	return map[string]string{
		"formSuccess":      "Thank you for completing the form!",
		"formError":        "An error occurred. Please try again.",
		"playerNotFound":   "&cPlayer '{player}' does not exist or has never joined the server.",
		"formNotFound":     "&cForm '{form}' not found for player: {player}.",
		"viewingForm":      "&aViewing form: {form} for player: {player}.",
		"answerRecorded":   "&aYour answer has been recorded.",
		"noFormsFound":     "&cNo forms found for player: {player}.",
		"readError":        "&cAn error occurred while reading the form file.",
		"formExists":       "&cA form with this name already exists.",
		"formCreated":      "&aForm '{form}' created successfully!",
		"questionExists":   "&cA question with ID '{id}' already exists.",
		"questionAdded":    "&aQuestion added successfully to form '{form}'.",
		"questionRemoved":  "&aQuestion removed successfully from form '{form}'.",
		"questionNotFound": "&cNo question with ID '{id}' found in form '{form}'.",
		"saveError":        "&cAn error occurred while saving the configuration.",
	}
}
