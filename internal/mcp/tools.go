package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	errUnknownTool = errors.New("unknown tool")
	errInvalidArgs = errors.New("invalid tool arguments")
)

// Default parameter values applied when a caller omits them.
const (
	defaultPreviewRows       = 5
	defaultCorrelationMethod = "pearson"
	defaultOutlierMethod     = "iqr"
	defaultImputeStrategy    = "mean"
)

// tools returns the tool catalog advertised by tools/list.
func (s *Server) tools() []Tool {
	pathProp := map[string]any{
		"type":        "string",
		"description": "Dataset path, relative to the data root or absolute inside it",
	}

	return []Tool{
		{
			Name:        "list_datasets",
			Description: "List CSV files available under the data root.",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "preview_csv",
			Description: "Return the first n_rows rows from a CSV file.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"path": pathProp,
					"n_rows": map[string]any{
						"type":        "integer",
						"description": "Number of rows to return",
						"default":     defaultPreviewRows,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "column_info",
			Description: "Return inferred dtype and basic counts for each column.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"path": pathProp,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "missing_values",
			Description: "Summarize missing value counts and rates per column.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"path": pathProp,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "describe_csv",
			Description: "Return descriptive statistics for the numeric columns of a CSV file.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"path": pathProp,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "correlation_matrix",
			Description: "Compute a pairwise correlation matrix over numeric columns.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"path": pathProp,
					"columns": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Columns to correlate (default: all numeric columns)",
					},
					"method": map[string]any{
						"type":        "string",
						"enum":        []string{"pearson", "spearman", "kendall"},
						"default":     defaultCorrelationMethod,
						"description": "Correlation method",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "detect_outliers",
			Description: "Detect outliers in a numeric column using the IQR or z-score method.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"path":   pathProp,
					"column": map[string]any{"type": "string", "description": "Column to analyze"},
					"method": map[string]any{
						"type":    "string",
						"enum":    []string{"iqr", "zscore"},
						"default": defaultOutlierMethod,
					},
				},
				"required": []string{"path", "column"},
			},
		},
		{
			Name:        "analyze_categorical",
			Description: "Analyze the value distribution of a categorical column.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"path":   pathProp,
					"column": map[string]any{"type": "string", "description": "Column to analyze"},
				},
				"required": []string{"path", "column"},
			},
		},
		{
			Name:        "data_quality_report",
			Description: "Generate a comprehensive data quality report for a CSV file.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"path": pathProp,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "impute_preview",
			Description: "Preview the effect of a missing-value handling strategy without modifying the file.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"path": pathProp,
					"strategy": map[string]any{
						"type":    "string",
						"enum":    []string{"mean", "median", "mode", "drop", "fill_zero"},
						"default": defaultImputeStrategy,
					},
					"columns": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Columns to process (default: all columns)",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

type pathArgs struct {
	Path string `json:"path"`
}

type previewArgs struct {
	Path  string `json:"path"`
	NRows *int   `json:"n_rows"`
}

type correlationArgs struct {
	Path    string   `json:"path"`
	Columns []string `json:"columns"`
	Method  string   `json:"method"`
}

type outlierArgs struct {
	Path   string `json:"path"`
	Column string `json:"column"`
	Method string `json:"method"`
}

type categoricalArgs struct {
	Path   string `json:"path"`
	Column string `json:"column"`
}

type imputeArgs struct {
	Path     string   `json:"path"`
	Strategy string   `json:"strategy"`
	Columns  []string `json:"columns"`
}

// callTool decodes the arguments for the named tool and invokes the
// analyzer. Classified errors pass through for the caller to surface.
func (s *Server) callTool(name string, args json.RawMessage) (any, error) {
	switch name {
	case "list_datasets":
		return s.analyzer.ListDatasets()

	case "preview_csv":
		var p previewArgs
		if err := decodeArgs(args, &p); err != nil {
			return nil, err
		}
		nRows := defaultPreviewRows
		if p.NRows != nil {
			nRows = *p.NRows
		}
		return s.analyzer.Preview(p.Path, nRows)

	case "column_info":
		var p pathArgs
		if err := decodeArgs(args, &p); err != nil {
			return nil, err
		}
		return s.analyzer.ColumnInfo(p.Path)

	case "missing_values":
		var p pathArgs
		if err := decodeArgs(args, &p); err != nil {
			return nil, err
		}
		return s.analyzer.MissingValues(p.Path)

	case "describe_csv":
		var p pathArgs
		if err := decodeArgs(args, &p); err != nil {
			return nil, err
		}
		return s.analyzer.Describe(p.Path)

	case "correlation_matrix":
		var p correlationArgs
		if err := decodeArgs(args, &p); err != nil {
			return nil, err
		}
		if p.Method == "" {
			p.Method = defaultCorrelationMethod
		}
		return s.analyzer.Correlation(p.Path, p.Columns, p.Method)

	case "detect_outliers":
		var p outlierArgs
		if err := decodeArgs(args, &p); err != nil {
			return nil, err
		}
		if p.Method == "" {
			p.Method = defaultOutlierMethod
		}
		return s.analyzer.DetectOutliers(p.Path, p.Column, p.Method)

	case "analyze_categorical":
		var p categoricalArgs
		if err := decodeArgs(args, &p); err != nil {
			return nil, err
		}
		return s.analyzer.AnalyzeCategorical(p.Path, p.Column)

	case "data_quality_report":
		var p pathArgs
		if err := decodeArgs(args, &p); err != nil {
			return nil, err
		}
		return s.analyzer.QualityReport(p.Path)

	case "impute_preview":
		var p imputeArgs
		if err := decodeArgs(args, &p); err != nil {
			return nil, err
		}
		if p.Strategy == "" {
			p.Strategy = defaultImputeStrategy
		}
		return s.analyzer.ImputePreview(p.Path, p.Strategy, p.Columns)

	default:
		return nil, fmt.Errorf("%w: %s", errUnknownTool, name)
	}
}

func decodeArgs(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArgs, err)
	}
	return nil
}
