package gemini

import "google.golang.org/genai"

// Schema construction helpers. Steps declare their expected output shape
// with these and pass it as a response hint.

func Object(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   required,
	}
}

func String(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func StringArray(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: description,
		Items:       &genai.Schema{Type: genai.TypeString},
	}
}

func Array(item *genai.Schema, description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Description: description, Items: item}
}
