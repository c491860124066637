package compile

import "fmt"

// baseCSS is the brand-independent stylesheet embedded in every compiled
// proposal. Brand colors are layered on top by brandCSS.
const baseCSS = `
body {
    font-family: system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
    margin: 0;
    padding: 0;
    background: #f5f5f7;
    color: #111827;
}
.page {
    max-width: 960px;
    margin: 24px auto;
    background: #ffffff;
    padding: 32px 40px;
    border-radius: 16px;
    box-shadow: 0 18px 45px rgba(15, 23, 42, 0.12);
}
h1, h2, h3, h4 {
    margin-top: 0;
}
.header {
    display: flex;
    justify-content: space-between;
    align-items: center;
    margin-bottom: 32px;
}
.brand-name {
    font-size: 1.5rem;
    font-weight: 700;
    letter-spacing: 0.04em;
}
.badge {
    display: inline-flex;
    align-items: center;
    padding: 4px 10px;
    border-radius: 999px;
    font-size: 0.75rem;
    font-weight: 600;
    text-transform: uppercase;
    letter-spacing: 0.06em;
    background: rgba(15, 23, 42, 0.04);
}
.section {
    margin-bottom: 32px;
    padding-bottom: 24px;
    border-bottom: 1px solid #e5e7eb;
}
.section:last-of-type {
    border-bottom: none;
    padding-bottom: 0;
}
.section h2 {
    font-size: 1.25rem;
    margin-bottom: 12px;
}
.meta-grid {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(220px, 1fr));
    gap: 12px 24px;
    margin-top: 12px;
    font-size: 0.9rem;
}
.meta-label {
    color: #6b7280;
    font-weight: 500;
    font-size: 0.8rem;
    text-transform: uppercase;
    letter-spacing: 0.06em;
}
.meta-value {
    font-weight: 600;
    color: #111827;
}
table.pricing {
    border-collapse: collapse;
    width: 100%;
    margin-top: 12px;
    font-size: 0.9rem;
}
table.pricing th,
table.pricing td {
    border: 1px solid #e5e7eb;
    padding: 8px 10px;
    text-align: left;
}
table.pricing th {
    background: #f9fafb;
    font-weight: 600;
    font-size: 0.8rem;
    text-transform: uppercase;
    letter-spacing: 0.05em;
}
.pricing-total {
    margin-top: 12px;
    text-align: right;
    font-weight: 700;
}
.footer {
    margin-top: 32px;
    font-size: 0.8rem;
    color: #9ca3af;
    text-align: center;
}
`

// brandCSS parametrizes accents, badges, links and highlights with the
// brand palette.
func brandCSS(primary, secondary, accent string) string {
	return fmt.Sprintf(`
.page {
    border-top: 6px solid %s;
}
.badge {
    background: %s;
    color: %s;
}
a {
    color: %s;
}
mark {
    background: %s33;
    color: %s;
}
`, primary, secondary, primary, primary, accent, primary)
}
