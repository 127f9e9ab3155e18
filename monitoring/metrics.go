package monitoring

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MetricType 指标类型
type MetricType string

const (
	MetricTypeCounter MetricType = "counter"
	MetricTypeGauge   MetricType = "gauge"
	MetricTypeSummary MetricType = "summary"
)

// Metric 单个时间序列
type Metric struct {
	Name   string            `json:"name"`
	Type   MetricType        `json:"type"`
	Value  float64           `json:"value"`
	Count  uint64            `json:"count,omitempty"`
	Labels map[string]string `json:"labels,omitempty"`
}

// MetricsCollector 指标收集器
type MetricsCollector struct {
	metrics     map[string]*Metric
	help        map[string]string
	metricsLock sync.RWMutex

	startTime time.Time
}

// NewMetricsCollector 创建指标收集器
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		metrics:   make(map[string]*Metric),
		help:      make(map[string]string),
		startTime: time.Now(),
	}
}

// Describe 设置指标说明
func (mc *MetricsCollector) Describe(name, help string) {
	mc.metricsLock.Lock()
	defer mc.metricsLock.Unlock()
	mc.help[name] = help
}

// IncrCounter 增加计数器
func (mc *MetricsCollector) IncrCounter(name string, value float64, labels map[string]string) {
	mc.update(name, MetricTypeCounter, labels, func(m *Metric) {
		m.Value += value
	})
}

// SetGauge 设置仪表
func (mc *MetricsCollector) SetGauge(name string, value float64, labels map[string]string) {
	mc.update(name, MetricTypeGauge, labels, func(m *Metric) {
		m.Value = value
	})
}

// Observe 记录摘要样本（总和与次数）
func (mc *MetricsCollector) Observe(name string, value float64, labels map[string]string) {
	mc.update(name, MetricTypeSummary, labels, func(m *Metric) {
		m.Value += value
		m.Count++
	})
}

func (mc *MetricsCollector) update(name string, typ MetricType, labels map[string]string, apply func(*Metric)) {
	key := seriesKey(name, labels)

	mc.metricsLock.Lock()
	defer mc.metricsLock.Unlock()

	m, ok := mc.metrics[key]
	if !ok {
		copied := make(map[string]string, len(labels))
		for k, v := range labels {
			copied[k] = v
		}
		m = &Metric{Name: name, Type: typ, Labels: copied}
		mc.metrics[key] = m
	}
	apply(m)
}

// GetMetric 获取指标当前值
func (mc *MetricsCollector) GetMetric(name string, labels map[string]string) (Metric, bool) {
	mc.metricsLock.RLock()
	defer mc.metricsLock.RUnlock()

	m, ok := mc.metrics[seriesKey(name, labels)]
	if !ok {
		return Metric{}, false
	}
	return *m, true
}

// GetUptime 获取运行时间
func (mc *MetricsCollector) GetUptime() time.Duration {
	return time.Since(mc.startTime)
}

// ExportPrometheus 导出Prometheus文本格式
func (mc *MetricsCollector) ExportPrometheus() string {
	mc.metricsLock.RLock()
	defer mc.metricsLock.RUnlock()

	byName := make(map[string][]*Metric)
	for _, m := range mc.metrics {
		byName[m.Name] = append(byName[m.Name], m)
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	writeHeader(&b, "process_uptime_seconds", "Seconds since the collector was created", MetricTypeGauge)
	fmt.Fprintf(&b, "process_uptime_seconds %s\n", formatValue(mc.GetUptime().Seconds()))

	for _, name := range names {
		series := byName[name]
		sort.Slice(series, func(i, j int) bool {
			return formatLabels(series[i].Labels) < formatLabels(series[j].Labels)
		})
		help := mc.help[name]
		if help == "" {
			help = fmt.Sprintf("Metric %s", name)
		}
		writeHeader(&b, name, help, series[0].Type)
		for _, m := range series {
			labels := formatLabels(m.Labels)
			if m.Type == MetricTypeSummary {
				fmt.Fprintf(&b, "%s_sum%s %s\n", name, labels, formatValue(m.Value))
				fmt.Fprintf(&b, "%s_count%s %d\n", name, labels, m.Count)
				continue
			}
			fmt.Fprintf(&b, "%s%s %s\n", name, labels, formatValue(m.Value))
		}
	}
	return b.String()
}

func writeHeader(b *strings.Builder, name, help string, typ MetricType) {
	fmt.Fprintf(b, "# HELP %s %s\n", name, help)
	fmt.Fprintf(b, "# TYPE %s %s\n", name, typ)
}

func seriesKey(name string, labels map[string]string) string {
	return name + formatLabels(labels)
}

func formatLabels(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%s", k, strconv.Quote(labels[k]))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
