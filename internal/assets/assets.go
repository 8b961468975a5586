package assets

// DefaultTemplateName is the name of the built-in resume template.
const DefaultTemplateName = "default"

// Placeholder is the token a template carries where resume content goes.
const Placeholder = "%[[[INSERT CONTENT HERE]]]%"
