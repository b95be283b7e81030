package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dropletstack/provision/pkg/monitoring"
	"github.com/dropletstack/provision/pkg/provision"
)

// WritePlanDetail prints one plan as aligned key/value rows.
func WritePlanDetail(w io.Writer, plan provision.Plan) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Domain:\t%s\n", plan.Domain)
	_, _ = fmt.Fprintf(tw, "Username:\t%s\n", plan.Username)
	_, _ = fmt.Fprintf(tw, "Subdomain:\t%t\n", plan.Subdomain)
	_, _ = fmt.Fprintf(tw, "Port:\t%d\n", plan.Port)
	_, _ = fmt.Fprintf(tw, "Home:\t%s\n", plan.Home)
	_, _ = fmt.Fprintf(tw, "Nginx config:\t%s\n", plan.NginxConfigPath)
	_, _ = fmt.Fprintf(tw, "Nginx enabled:\t%s\n", plan.NginxEnabledPath)
	_, _ = fmt.Fprintf(tw, "Service:\t%s\n", plan.ServiceName)
	_, _ = fmt.Fprintf(tw, "Service path:\t%s\n", plan.ServicePath)
	_, _ = fmt.Fprintf(tw, "Certificate dir:\t%s\n", plan.CertificateDir)
	_, _ = fmt.Fprintf(tw, "Certificate domains:\t%s\n", strings.Join(plan.CertificateDomains, ", "))
	_, _ = fmt.Fprintf(tw, "Prometheus job:\t%s\n", plan.PrometheusJob)
	_ = tw.Flush()
}

// WriteJobsTable prints scrape jobs, one row each.
func WriteJobsTable(w io.Writer, jobs []monitoring.Job) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "JOB\tMETRICS_PATH\tTARGETS\tDOMAIN")
	for _, j := range jobs {
		var targets []string
		domain := "-"
		for _, sc := range j.StaticConfigs {
			targets = append(targets, sc.Targets...)
			if d, ok := sc.Labels["domain"]; ok {
				domain = d
			}
		}
		metricsPath := j.MetricsPath
		if metricsPath == "" {
			metricsPath = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", j.JobName, metricsPath, strings.Join(targets, ","), domain)
	}
	_ = tw.Flush()
}
