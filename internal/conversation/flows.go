package conversation

import (
	"lingod/internal/events"
	"lingod/internal/host"
	"lingod/internal/status"
	"lingod/pkg/types"
)

func (c *Conversation) detect(id int64, text string) {
	lang := c.detectLanguage(id, text)
	summarizer := status.Unavailable
	if c.status != nil {
		summarizer = c.status.Status(host.SummarizerFeature)
	}

	c.mu.Lock()
	m := c.index[id]
	m.Language = lang
	// Decided once; later status changes never revisit it.
	m.CanSummarize = lang.Code == summarizeLanguage && m.WordCount > summarizeMinWords && summarizer.Usable()
	c.detecting--
	detectingGauge.Dec()
	c.mu.Unlock()

	c.publish(events.MessageUpdated, id, map[string]any{"change": "language", "language": lang.Code})
}

// detectLanguage never fails; anything that goes wrong yields unknown.
func (c *Conversation) detectLanguage(id int64, text string) types.Language {
	if c.status != nil {
		switch c.status.Status(host.LanguageDetectorFeature) {
		case status.Unavailable, status.No:
			return types.Language{}
		}
	}
	ctx, cancel := c.invokeContext()
	defer cancel()
	res, err := c.invoker.Detect(ctx, text)
	observeFlow("detect", err)
	if err != nil {
		c.log.Warn().Err(err).Int64("id", id).Msg("language detection failed")
		return types.Language{}
	}
	if len(res) == 0 {
		return types.Language{}
	}
	lang := types.Language{Code: res[0].Language, Confidence: res[0].Confidence}
	for i := 0; i < len(res) && i < maxDetected; i++ {
		lang.AllDetected = append(lang.AllDetected, types.DetectedLanguage{Code: res[i].Language, Confidence: res[i].Confidence})
	}
	return lang
}

// RequestSummary starts summarizing a message. The result lands on the
// message asynchronously.
func (c *Conversation) RequestSummary(id int64) error {
	c.mu.Lock()
	m, ok := c.index[id]
	switch {
	case !ok:
		c.mu.Unlock()
		return ErrMessageNotFound
	case m.IsSummarizing:
		c.mu.Unlock()
		return ErrInProgress
	case m.Language.Detecting:
		c.mu.Unlock()
		return ErrNotDetected
	}
	m.IsSummarizing = true
	m.SummaryError = false
	m.SummaryErrorMessage = ""
	text := m.Text
	c.wg.Add(1)
	c.mu.Unlock()

	c.publish(events.MessageUpdated, id, map[string]any{"change": "summarizing"})
	go func() {
		defer c.wg.Done()
		c.summarize(id, text)
	}()
	return nil
}

func (c *Conversation) summarize(id int64, text string) {
	ctx, cancel := c.invokeContext()
	defer cancel()
	out, err := c.invoker.Summarize(ctx, text)
	var sum Summary
	if err == nil {
		sum, err = NormalizeSummary(out)
	}
	observeFlow("summarize", err)

	c.mu.Lock()
	m := c.index[id]
	m.IsSummarizing = false
	if err != nil {
		m.SummaryError = true
		m.SummaryErrorMessage = errorText(err, summaryFailed)
	} else {
		m.Summary = sum.Text
		m.SummaryShape = string(sum.Shape)
		m.ShowSummary = true
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Warn().Err(err).Int64("id", id).Msg("summarization failed")
	} else if sum.Shape == ShapeUnrecognized {
		c.log.Warn().Int64("id", id).Msg("summarizer returned an unrecognized shape")
	}
	c.publish(events.MessageUpdated, id, map[string]any{"change": "summary", "error": err != nil})
}

// RequestTranslation starts translating a message from its detected
// language into target.
func (c *Conversation) RequestTranslation(id int64, target string) error {
	c.mu.Lock()
	m, ok := c.index[id]
	switch {
	case !ok:
		c.mu.Unlock()
		return ErrMessageNotFound
	case m.IsTranslating:
		c.mu.Unlock()
		return ErrInProgress
	case !m.Language.Detected():
		c.mu.Unlock()
		return ErrNotDetected
	case target == "" || target == m.Language.Code:
		c.mu.Unlock()
		return ErrInvalidTarget
	}
	m.IsTranslating = true
	m.TranslationError = false
	m.TranslationErrorMessage = ""
	text, source := m.Text, m.Language.Code
	c.wg.Add(1)
	c.mu.Unlock()

	c.publish(events.MessageUpdated, id, map[string]any{"change": "translating", "source": source, "target": target})
	go func() {
		defer c.wg.Done()
		c.translate(id, source, target, text)
	}()
	return nil
}

func (c *Conversation) translate(id int64, source, target, text string) {
	ctx, cancel := c.invokeContext()
	defer cancel()
	out, err := c.invoker.Translate(ctx, source, target, text)
	observeFlow("translate", err)

	c.mu.Lock()
	m := c.index[id]
	m.IsTranslating = false
	if err != nil {
		m.TranslationError = true
		m.TranslationErrorMessage = errorText(err, translationFailed)
	} else {
		m.Translation = &types.Translation{Text: out, Source: source, Target: target}
		m.ShowTranslation = true
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Warn().Err(err).Int64("id", id).Str("source", source).Str("target", target).Msg("translation failed")
	}
	c.publish(events.MessageUpdated, id, map[string]any{"change": "translation", "error": err != nil})
}
