package openai

const rewritePrompt = `Rewrite the following résumé text into the exact section layout below, extracting the relevant information precisely.

Rules:
- Keep the section names and their order EXACTLY as given.
- If a section is not present in the text, include it anyway and leave it empty.
- Never invent or alter sensitive data such as names, emails, or links.
- Output only the filled layout, no commentary.

Output layout (respect titles and form):

Full name:
Current title:
Primary skill:
Total years of experience:
Professional summary:
Key skills:

Work experience:
[Title]
[Employer]
[Start year] - [End year]
[Short role description]

(repeat the block for each position)

Education:
[Degree or program]
[Institution]
[Start year] - [End year]
[Short description]

(repeat the block for each entry)

Text:
`

const structureResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "full_name": {"type": "string"},
    "current_title": {"type": "string"},
    "primary_skill": {"type": "string"},
    "years_experience": {"type": "integer", "minimum": 0},
    "summary": {"type": "string"},
    "key_skills": {"type": "array", "items": {"type": "string"}},
    "experience": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "title": {"type": "string"},
          "employer": {"type": "string"},
          "start_year": {"type": "integer"},
          "end_year": {"type": "string"},
          "description": {"type": "string"}
        },
        "required": ["title", "employer", "start_year", "end_year", "description"],
        "additionalProperties": false
      }
    },
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "degree": {"type": "string"},
          "institution": {"type": "string"},
          "start_year": {"type": "integer"},
          "end_year": {"type": "string"},
          "description": {"type": "string"}
        },
        "required": ["degree", "institution", "start_year", "end_year", "description"],
        "additionalProperties": false
      }
    }
  },
  "required": ["full_name", "current_title", "primary_skill", "years_experience",
               "summary", "key_skills", "experience", "education"],
  "additionalProperties": false
}`

const structurePromptTemplate = `Convert the following rewritten candidate profile text into JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- If information is missing use the defaults: "" for strings, 0 for unknown numbers, [] for lists, and "present" for end_year when the position is current.
- Never invent data that is not in the text.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Rewritten text:
`

const expandQueryPrompt = `Act as a senior technical recruiter. Transform a short search query into a concise, semantically dense profile of the ideal candidate. The generated profile must imitate the structure of the candidate profiles it will be compared against, to maximize vector-search precision.

Instructions:
1. Identify the main role, the seniority level, and the key technologies in the query.
2. Build a profile that STRICTLY follows the format: "Role: [job title and 1-2 synonyms]. Key skills: [main and directly related technologies]. Professional summary: [paragraph describing the ideal candidate's experience, responsibilities, and achievements]."
3. Enrich, don't inflate: add only directly related technologies and concepts. For "Java developer" add "Spring Boot, Microservices, Maven, JPA, SQL"; do not add unrelated stacks.
4. Return ONLY the generated profile, with no introduction or extra text.

Example query: "senior python backend developer with aws"
Expected output:
Role: Senior Python Backend Developer, Backend Software Engineer. Key skills: Python, Django, Flask, FastAPI, AWS, EC2, S3, RDS, Docker, Kubernetes, SQL, PostgreSQL, CI/CD. Professional summary: A software engineer with over 5 years of experience designing, building, and deploying scalable and resilient backend applications. Expert in the Python ecosystem and microservice architecture, with solid experience managing infrastructure as code on AWS and implementing CI/CD pipelines.

---
Query:
`

const keywordsPrompt = `From the following recruiter search query, extract only the CRITICAL keywords: specific technologies, certifications, tools, or specializations whose literal presence in a candidate profile is near-mandatory. Exclude generic terms such as seniority adjectives ("senior", "experienced") and role synonyms ("developer", "engineer").

Output ONLY a JSON array of lower-case canonical strings, nothing else. Normalize abbreviations to their canonical form (for example "JS" becomes "javascript", "k8s" becomes "kubernetes"). If no term qualifies, output [].

Example query: "Senior React developer with TypeScript and AWS certification"
Expected output: ["react", "typescript", "aws"]

Query:
`

const readPagePrompt = `Transcribe all text visible in this document page image. Preserve the reading order and line structure as far as possible. Output only the transcribed text, with no commentary. If the page contains no readable text, output an empty response.`
