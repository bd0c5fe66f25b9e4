package models

// ResourceKind identifies the type of a resource attached to a fragment
type ResourceKind string

const (
	ResourceKindJavaScript ResourceKind = "javascript"
	ResourceKindCSS        ResourceKind = "css"
)

// FragmentResource is a script or stylesheet attached to a fragment
type FragmentResource struct {
	Kind ResourceKind `json:"kind"`
	Data string       `json:"data"`
}

// Fragment is a render result: HTML, ordered resources and an optional client initializer
type Fragment struct {
	Content   string             `json:"content"`
	Resources []FragmentResource `json:"resources"`
	JSInitFn  string             `json:"js_init_fn,omitempty"`
}

// NewFragment creates a fragment with the given HTML content
func NewFragment(content string) *Fragment {
	return &Fragment{
		Content:   content,
		Resources: []FragmentResource{},
	}
}

// AddJavaScript appends a script to the fragment
func (f *Fragment) AddJavaScript(data string) {
	f.Resources = append(f.Resources, FragmentResource{Kind: ResourceKindJavaScript, Data: data})
}

// InitializeJS declares the client-side controller
func (f *Fragment) InitializeJS(name string) {
	f.JSInitFn = name
}
