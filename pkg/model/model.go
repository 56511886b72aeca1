package model

// CrashReport is everything sent to the completion service for one crash.
// It is built once at interception time and never modified.
type CrashReport struct {
	ID             string `json:"id"`
	FilePath       string `json:"file_path"`
	TracebackText  string `json:"traceback_text"`
	SourceSnapshot string `json:"source_snapshot"`
	PlatformBanner string `json:"platform_banner"`
}

// PatchResult is the structured answer for a CrashReport.
type PatchResult struct {
	Problem       string `json:"problem" yaml:"problem" description:"A description of the error or problem"`
	Solution      string `json:"solution" yaml:"solution" description:"The solution to the problem"`
	CorrectedCode string `json:"corrected_code" yaml:"corrected_code" description:"The complete corrected version of the source file"`
}

// Frame is one entry of a traceback.
type Frame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function,omitempty"`
}

// Language identifies the runtime that produced a traceback.
type Language string

const (
	LanguageUnknown Language = "unknown"
	LanguagePython  Language = "python"
	LanguageGo      Language = "go"
)

// Traceback is a parsed crash report. Frames are ordered outermost first,
// so the last frame is the deepest call site.
type Traceback struct {
	Text      string   `json:"text"`
	Frames    []Frame  `json:"frames"`
	Language  Language `json:"language"`
	Interrupt bool     `json:"interrupt"`
}

// ProjectStructure is the manifest returned when planning a new project.
type ProjectStructure struct {
	Files []ProjectFile `json:"files" yaml:"files" description:"All files and directories in the project"`
}

// ProjectFile is a file or a directory (path ending in "/") of a project.
type ProjectFile struct {
	Path        string            `json:"path" yaml:"path" description:"Path relative to the project root; directories end with /"`
	Description string            `json:"description" yaml:"description" description:"High-level purpose of the file or directory"`
	Functions   []FunctionDetails `json:"functions" yaml:"functions,omitempty" description:"Functions or classes defined in a code file"`
}

// IsDir reports whether the entry names a directory.
func (f ProjectFile) IsDir() bool {
	return len(f.Path) > 0 && f.Path[len(f.Path)-1] == '/'
}

type FunctionDetails struct {
	FunctionName string   `json:"function_name" yaml:"function_name"`
	Description  string   `json:"description" yaml:"description"`
	Inputs       []string `json:"inputs" yaml:"inputs,omitempty" description:"Inputs with their data types"`
	Outputs      []string `json:"outputs" yaml:"outputs,omitempty" description:"Outputs with their data types"`
}

// Document is a file read from disk to give the model extra context.
type Document struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}
