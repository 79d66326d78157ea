package tailor

// Progress is a passive observer for client-visible milestones. Every hook is
// optional and nil-safe; hooks are invoked synchronously and must not block.
// Within one operation the percentages passed to OnProgress never decrease.
type Progress struct {
	OnProgress          func(percent int)
	OnInfoProcessed     func()
	OnTemplateProcessed func()
}

func (p *Progress) progress(percent int) {
	if p != nil && p.OnProgress != nil {
		p.OnProgress(percent)
	}
}

func (p *Progress) infoProcessed() {
	if p != nil && p.OnInfoProcessed != nil {
		p.OnInfoProcessed()
	}
}

func (p *Progress) templateProcessed() {
	if p != nil && p.OnTemplateProcessed != nil {
		p.OnTemplateProcessed()
	}
}
