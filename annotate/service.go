package annotate

import (
	"context"
	"strings"

	"github.com/kbukum/convokit/conversation"
	"github.com/kbukum/convokit/dag"
	"github.com/kbukum/convokit/detect"
	"github.com/kbukum/convokit/logger"
	"github.com/kbukum/convokit/observability"
	"github.com/kbukum/convokit/present"
	"github.com/kbukum/convokit/transcript"
)

const serviceName = "convokit"

// Service annotates transcripts with a fixed pipeline.
type Service struct {
	cfg       Config
	detectors *detect.Registry
	pipeline  *dag.Pipeline
	graph     *dag.Graph
	order     []string
	engine    *dag.Engine
	filter    dag.NodeFilter
	vocabs    map[string]*present.Vocabulary
	metrics   *observability.Metrics
	log       *logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records request and detector metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger overrides the component logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithDetectors replaces the built-in detector registry.
func WithDetectors(r *detect.Registry) Option {
	return func(s *Service) { s.detectors = r }
}

// New validates cfg, resolves the pipeline and loads the configured
// vocabularies.
func New(cfg Config, opts ...Option) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Service{
		cfg:    cfg,
		engine: &dag.Engine{},
		vocabs: make(map[string]*present.Vocabulary),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.detectors == nil {
		s.detectors = detect.NewRegistry()
	}
	if s.log == nil {
		s.log = logger.Get("annotate")
	}

	if err := s.buildPipeline(); err != nil {
		return nil, err
	}
	if err := s.loadVocabularies(); err != nil {
		return nil, err
	}

	s.log.Info("annotation service ready", map[string]interface{}{
		"pipeline":   s.pipeline.Name,
		"detectors":  s.order,
		"vocabulary": cfg.Vocabulary.Default,
	})
	return s, nil
}

func (s *Service) buildPipeline() error {
	wrappers := []func(dag.Node) dag.Node{
		func(n dag.Node) dag.Node { return dag.WithLogging(n, s.log) },
		func(n dag.Node) dag.Node { return dag.WithTracing(n, observability.SpanDetect) },
	}
	if s.metrics != nil {
		wrappers = append(wrappers, func(n dag.Node) dag.Node { return dag.WithMetrics(n, s.metrics) })
	}
	nodes, err := dag.NewDetectorRegistry(s.detectors, s.cfg.Detect, wrappers...)
	if err != nil {
		return err
	}

	if s.cfg.Pipeline.File != "" {
		s.pipeline, err = dag.LoadPipeline(s.cfg.Pipeline.File, s.cfg.Pipeline.File)
		if err != nil {
			return err
		}
	} else {
		s.pipeline = dag.Chain("default", s.cfg.Pipeline.Detectors...)
	}

	var loader dag.PipelineLoader
	if len(s.cfg.Pipeline.Dirs) > 0 {
		loader = dag.NewFilePipelineLoader(s.cfg.Pipeline.Dirs...)
	}
	s.graph, err = dag.ResolvePipeline(s.pipeline, nodes, loader)
	if err != nil {
		return err
	}
	s.order, err = dag.Order(s.graph)
	if err != nil {
		return err
	}
	s.filter = dag.ConditionFilter(s.pipeline, dag.DefaultConditions())
	return nil
}

func (s *Service) loadVocabularies() error {
	for name, path := range s.cfg.Vocabulary.Files {
		v, err := present.LoadVocabulary(path)
		if err != nil {
			return err
		}
		s.vocabs[strings.ToLower(name)] = v
	}
	_, err := s.Vocabulary(s.cfg.Vocabulary.Default)
	return err
}

// Detectors returns the detector names in execution order.
func (s *Service) Detectors() []string {
	return append([]string(nil), s.order...)
}

// Vocabulary returns the named vocabulary, configured files first, then
// the built-ins. An empty name selects the default. The result is a copy.
func (s *Service) Vocabulary(name string) (*present.Vocabulary, error) {
	if name == "" {
		name = s.cfg.Vocabulary.Default
	}
	if v, ok := s.vocabs[strings.ToLower(name)]; ok {
		return v.Clone(), nil
	}
	return present.Builtin(name)
}

// Detect builds a model from t and runs the pipeline over it.
func (s *Service) Detect(ctx context.Context, t *transcript.Transcript) (*conversation.Model, *dag.Result, error) {
	m, err := conversation.FromTranscript(t, conversation.WithTurnConfig(s.cfg.Turn))
	if err != nil {
		return nil, nil, err
	}
	observability.SetSpanAttribute(ctx, observability.AttrModelID, m.ID)
	observability.SetSpanAttribute(ctx, observability.AttrTokens, m.Stats().TokenCount)

	state := dag.NewModelState(m)

	result, err := s.engine.ExecuteFiltered(ctx, s.graph, state, s.filter)
	return m, result, err
}

// Annotate runs detection over t and renders the result with the named
// vocabulary.
func (s *Service) Annotate(ctx context.Context, t *transcript.Transcript, format string) (doc *present.Document, err error) {
	ctx, op := observability.StartOperation(ctx, serviceName, "annotate", observability.SpanAnnotate, s.metrics)
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		op.End(ctx, status, err)
	}()

	vocab, err := s.Vocabulary(format)
	if err != nil {
		return nil, err
	}
	observability.SetSpanAttribute(ctx, observability.AttrFormat, vocab.Name)

	m, _, err := s.Detect(ctx, t)
	if err != nil {
		return nil, err
	}

	resolveCtx, resolveSpan := observability.StartSpan(ctx, observability.SpanResolve)
	doc, err = present.Render(m, vocab)
	if err != nil {
		observability.SetSpanError(resolveCtx, err)
	}
	resolveSpan.End()
	if err != nil {
		return nil, err
	}

	stats := m.Stats()
	markers := 0
	for _, n := range stats.MarkerCounts {
		markers += n
	}
	observability.SetSpanAttribute(ctx, observability.AttrMarkers, markers)
	s.log.WithContext(ctx).Debug("transcript annotated", map[string]interface{}{
		logger.FieldModelID: m.ID,
		logger.FieldTurns:   len(doc.Turns),
		logger.FieldTokens:  stats.TokenCount,
		logger.FieldMarkers: markers,
		"format":            vocab.Name,
	})
	return doc, nil
}
