package window

// Signal es un reporte de visibilidad de la superficie de render
type Signal struct {
	Handle string  `json:"handle"`
	Index  *int    `json:"index,omitempty"`
	Ratio  float64 `json:"ratio"`
}

// RegisterVisibility asocia un elemento renderizado con el índice de su item
func (c *Controller) RegisterVisibility(handle string, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}
	if prev, ok := c.handles[handle]; ok && prev != index {
		delete(c.visible, handle)
	}
	c.handles[handle] = index
}

// UnregisterVisibility deja de observar un elemento
func (c *Controller) UnregisterVisibility(handle string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.handles, handle)
	delete(c.visible, handle)
}

// ReportVisibility procesa un cambio de visibilidad. Solo el cruce hacia
// VisibilityThreshold o más mueve el índice actual. Retorna true si el índice cambió.
func (c *Controller) ReportVisibility(handle string, ratio float64) bool {
	c.mu.Lock()
	index, ok := c.handles[handle]
	if !ok || c.disposed {
		c.mu.Unlock()
		return false
	}

	isVisible := ratio >= VisibilityThreshold
	crossed := isVisible && !c.visible[handle]
	c.visible[handle] = isVisible
	c.mu.Unlock()

	if !crossed {
		return false
	}
	return c.SetCurrentIndex(index)
}

// ReportVisibilityBatch procesa señales en orden de llegada; la última gana.
// Una señal con Index registra el handle antes de reportarlo.
func (c *Controller) ReportVisibilityBatch(signals []Signal) {
	for _, s := range signals {
		if s.Index != nil {
			c.RegisterVisibility(s.Handle, *s.Index)
		}
		c.ReportVisibility(s.Handle, s.Ratio)
	}
}
