package dom

// FrameRequester schedules a callback for the next display refresh.
type FrameRequester interface {
	RequestFrame(fn func())
}

// Viewport is a scroll position.
type Viewport struct {
	X, Y int
}

// WithNode looks up id on the next frame, when pending patches have been
// applied, and passes the element to fn. The result of fn, or a NotFoundError,
// is delivered to callback.
func WithNode[T any](frames FrameRequester, doc *Document, id string, fn func(*Element) T, callback func(T, error)) {
	frames.RequestFrame(func() {
		el := doc.GetElementByID(id)
		if el == nil {
			var zero T
			callback(zero, NotFoundError{ID: id})
			return
		}
		callback(fn(el), nil)
	})
}

// GetScroll reports the scroll offset of the element with the given id.
func GetScroll(frames FrameRequester, doc *Document, id string, callback func(Viewport, error)) {
	WithNode(frames, doc, id, func(el *Element) Viewport {
		return Viewport{Y: el.ScrollTop}
	}, callback)
}

// SetScroll sets the scroll offset of the element with the given id. A
// negative offset is measured from the bottom.
func SetScroll(frames FrameRequester, doc *Document, id string, offset int, callback func(struct{}, error)) {
	WithNode(frames, doc, id, func(el *Element) struct{} {
		if offset < 0 {
			el.ScrollTop = el.ScrollHeight + offset
		} else {
			el.ScrollTop = offset
		}
		if el.ScrollTop < 0 {
			el.ScrollTop = 0
		}
		el.touch()
		return struct{}{}
	}, callback)
}

// ScrollToBottom scrolls the element with the given id to the end of its
// content.
func ScrollToBottom(frames FrameRequester, doc *Document, id string, callback func(struct{}, error)) {
	WithNode(frames, doc, id, func(el *Element) struct{} {
		if el.ScrollTop != el.ScrollHeight {
			el.ScrollTop = el.ScrollHeight
			el.touch()
		}
		return struct{}{}
	}, callback)
}
