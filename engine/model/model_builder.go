package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
// When omitted the imported model's name is used.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithImported is an option builder that sets the imported data backing the Model.
//
// Parameters:
//   - imported: the imported model produced by a loader backend
//
// Returns:
//   - ModelBuilderOption: a function that applies the imported data to a model
func WithImported(imported *ImportedModel) ModelBuilderOption {
	return func(m *model) {
		if imported != nil {
			m.imported = imported
		}
	}
}
