package browser

import "fmt"

// scanScript walks the DOM in document order and collects every visible
// interactive element with a selector stable enough to target later.
const scanScript = `() => {
	const elements = [];

	// CSS class names can't start with a digit and must not contain
	// selector metacharacters.
	function isValidCSSIdent(cls) {
		if (!cls || cls.length === 0) return false;
		if (/^[0-9]/.test(cls)) return false;
		if (/^-[0-9]/.test(cls)) return false;
		if (/[.:#\[\]()>~+*\/\\]/.test(cls)) return false;
		return true;
	}

	function getSelector(el) {
		if (el.id && isValidCSSIdent(el.id)) return '#' + el.id;
		if (el.name) {
			let selector = el.tagName.toLowerCase() + '[name="' + el.name + '"]';
			// Radios and checkboxes share one name per group; qualify by
			// value so every member stays addressable.
			const type = (el.getAttribute('type') || '').toLowerCase();
			if ((type === 'radio' || type === 'checkbox') && el.value) {
				selector += '[value="' + el.value + '"]';
			}
			return selector;
		}

		if (el.className && typeof el.className === 'string') {
			const validClasses = el.className.trim().split(/\s+/).filter(isValidCSSIdent).slice(0, 2);
			if (validClasses.length > 0) {
				const selector = el.tagName.toLowerCase() + '.' + validClasses.join('.');
				try {
					if (document.querySelectorAll(selector).length === 1) {
						return selector;
					}
				} catch (e) {
					// Invalid selector, fall through
				}
			}
		}

		const parent = el.parentElement;
		if (parent) {
			const siblings = Array.from(parent.children);
			const index = siblings.indexOf(el) + 1;
			const parentSelector = getSelector(parent);
			if (parentSelector) {
				return parentSelector + ' > ' + el.tagName.toLowerCase() + ':nth-child(' + index + ')';
			}
		}

		return el.tagName.toLowerCase();
	}

	function labelFor(el) {
		if (el.id) {
			const label = document.querySelector('label[for="' + el.id + '"]');
			if (label) return label.textContent.trim();
		}
		const wrapping = el.closest('label');
		if (wrapping) return wrapping.textContent.trim();
		return (el.getAttribute('aria-label') || '').trim();
	}

	document.querySelectorAll('input, select, textarea, button').forEach(el => {
		if (!el.offsetParent) return; // not visible
		const tag = el.tagName.toLowerCase();
		const type = (el.getAttribute('type') || '').toLowerCase();
		if (tag === 'input' && type === 'hidden') return;

		const selector = getSelector(el);

		let label = labelFor(el);
		if (tag === 'button' && !label) {
			label = (el.textContent || '').trim();
		}

		elements.push({
			tag: tag,
			type: type,
			name: el.name || '',
			id: el.id || '',
			placeholder: el.placeholder || '',
			label: label.slice(0, 100),
			selector: selector
		});
	});

	return elements;
}`

// Scan extracts a descriptor for every interactive element currently in
// the DOM, in document order.
func (s *RodSession) Scan() ([]FormElement, error) {
	obj, err := s.page.Eval(scanScript)
	if err != nil {
		return nil, fmt.Errorf("scan page: %w", err)
	}

	var elements []FormElement
	for _, v := range obj.Value.Arr() {
		elements = append(elements, FormElement{
			Tag:         v.Get("tag").Str(),
			Type:        v.Get("type").Str(),
			Name:        v.Get("name").Str(),
			ID:          v.Get("id").Str(),
			Placeholder: v.Get("placeholder").Str(),
			Label:       v.Get("label").Str(),
			Selector:    v.Get("selector").Str(),
		})
	}
	return dedupeBySelector(elements), nil
}

// dedupeBySelector drops elements whose selector duplicates an earlier
// one, keeping the first occurrence. Elements a later lookup could not
// distinguish are useless to the planner; everything else, including
// value-qualified members of a radio group, survives.
func dedupeBySelector(elements []FormElement) []FormElement {
	seen := make(map[string]bool, len(elements))
	var out []FormElement
	for _, el := range elements {
		if seen[el.Selector] {
			continue
		}
		seen[el.Selector] = true
		out = append(out, el)
	}
	return out
}
