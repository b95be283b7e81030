package monitoring

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultMetricsPath is where provisioned applications expose metrics.
const DefaultMetricsPath = "/metrics"

const scrapeConfigsKey = "scrape_configs"

// Job is one scrape_configs entry.
type Job struct {
	JobName       string         `yaml:"job_name"`
	MetricsPath   string         `yaml:"metrics_path,omitempty"`
	StaticConfigs []StaticConfig `yaml:"static_configs,omitempty"`
}

// StaticConfig is one static target group within a job.
type StaticConfig struct {
	Targets []string          `yaml:"targets"`
	Labels  map[string]string `yaml:"labels,omitempty"`
}

// NewAppJob builds the scrape job for a provisioned application: the derived
// username as job name and app label, the raw domain as a label, and a
// localhost target on the application port.
func NewAppJob(username, domain string, port int) Job {
	return Job{
		JobName:     username,
		MetricsPath: DefaultMetricsPath,
		StaticConfigs: []StaticConfig{{
			Targets: []string{fmt.Sprintf("localhost:%d", port)},
			Labels: map[string]string{
				"domain": domain,
				"app":    username,
			},
		}},
	}
}

// AddScrapeTarget appends the job to the document's scrape_configs unless a
// job of the same name already exists. A duplicate is a no-op success: the
// original document is returned untouched with changed=false, so applying
// the same job twice yields one entry.
//
// The merge works on the yaml.v3 node tree rather than a rebuilt map, so
// prior entries keep their order and unrelated top-level keys (global, rule
// files, alerting, ...) survive re-serialization. A missing scrape_configs
// section is created.
func AddScrapeTarget(doc []byte, job Job) (out []byte, changed bool, err error) {
	if job.JobName == "" {
		return nil, false, fmt.Errorf("job name is empty")
	}

	root, mapping, err := parseDocument(doc)
	if err != nil {
		return nil, false, err
	}

	seq := findMappingValue(mapping, scrapeConfigsKey)
	if seq == nil {
		seq = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: scrapeConfigsKey},
			seq,
		)
	}
	if seq.Kind != yaml.SequenceNode && !(seq.Kind == yaml.ScalarNode && seq.Tag == "!!null") {
		return nil, false, fmt.Errorf("%s is not a sequence", scrapeConfigsKey)
	}
	if seq.Kind == yaml.ScalarNode {
		// "scrape_configs:" with no entries parses as null; promote it.
		seq.Kind = yaml.SequenceNode
		seq.Tag = "!!seq"
		seq.Value = ""
	}

	for _, entry := range seq.Content {
		name := findMappingValue(entry, "job_name")
		if name != nil && name.Value == job.JobName {
			return doc, false, nil
		}
	}

	var jobNode yaml.Node
	if err := jobNode.Encode(job); err != nil {
		return nil, false, fmt.Errorf("failed to encode job: %w", err)
	}
	seq.Content = append(seq.Content, &jobNode)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, false, fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, false, fmt.Errorf("failed to serialize config: %w", err)
	}

	return buf.Bytes(), true, nil
}

// Jobs returns the scrape jobs declared in the document.
func Jobs(doc []byte) ([]Job, error) {
	var cfg struct {
		ScrapeConfigs []Job `yaml:"scrape_configs"`
	}
	if err := yaml.Unmarshal(doc, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg.ScrapeConfigs, nil
}

// JobNames returns the job names declared in the document, in document order.
func JobNames(doc []byte) ([]string, error) {
	jobs, err := Jobs(doc)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		names = append(names, j.JobName)
	}
	return names, nil
}

// HasJob reports whether a job of the given name exists in the document.
func HasJob(doc []byte, name string) (bool, error) {
	names, err := JobNames(doc)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// parseDocument unmarshals the raw document into a node tree and returns the
// document node plus its top-level mapping, creating both for empty input.
func parseDocument(doc []byte) (*yaml.Node, *yaml.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if root.Kind == 0 {
		mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{mapping}}, mapping, nil
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, nil, fmt.Errorf("unexpected document structure")
	}

	mapping := root.Content[0]
	if mapping.Kind == yaml.ScalarNode && mapping.Tag == "!!null" {
		mapping.Kind = yaml.MappingNode
		mapping.Tag = "!!map"
		mapping.Value = ""
	}
	if mapping.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("config root must be a mapping")
	}

	return &root, mapping, nil
}

// findMappingValue returns the value node for a key within a mapping node,
// or nil when the node is not a mapping or the key is absent.
func findMappingValue(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}
