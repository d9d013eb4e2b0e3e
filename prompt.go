package laborcrawl

// ExtractionPolicy is the fixed system instruction sent to every
// extraction backend. Both the hosted and the local backend receive the
// same policy so their outputs stay interchangeable.
const ExtractionPolicy = `You are a data extractor analyzing a Taiwanese labor-court judgment.
Identify the plaintiff worker's job title (職稱) and monthly salary (月薪).

Rules:
- job_title: the plaintiff's job title. If the judgment never states it, fall back to the employer's name. If neither is present, use null.
- monthly_salary: the monthly salary as determined by the court, preferred over figures merely claimed by either party. Return a bare number with no thousands separators or currency symbols. Use null if not found.
- currency: "TWD" unless the judgment states otherwise.

Return ONLY a JSON object of the form {"job_title": ..., "monthly_salary": ..., "currency": ...} with exactly these three fields and no surrounding text.`
