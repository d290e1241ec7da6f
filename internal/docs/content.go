package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with autodoc",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Config file schema, fields, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "prompts",
		Title:   "Prompts and Examples",
		Summary: "Prompt file sections, template variables, example documents",
		Content: topicPrompts,
	},
	{
		Name:    "workflow",
		Title:   "Workflow Stages",
		Summary: "What run/doc/generate do, stage by stage",
		Content: topicWorkflow,
	},
	{
		Name:    "exit-codes",
		Title:   "Exit Codes",
		Summary: "Process exit codes for scripting",
		Content: topicExitCodes,
	},
}

const topicQuickstart = `Quick Start
===========

1. Initialize your configuration:

    autodoc init --tracker-url https://jira.example.com \
                 --tracker-user you --tracker-token TOKEN \
                 --backend-key sk-...

   This creates ~/.autodoc/config.yaml, a default prompts file, and one
   example document.

2. Generate a document for a ticket into the current directory:

    autodoc doc PROJ-123

   Each draft is shown for review. Press enter (or y) to accept, type
   feedback to regenerate with it applied, or q to abort.

3. Run the full workflow — branch, generate, commit, push:

    cd your-repo
    autodoc run PROJ-123
`

const topicConfig = `Configuration Reference
=======================

Config lives at ~/.autodoc/config.yaml.

tracker:
  base-url:   Issue tracker API base URL (required)
  username:   Tracker user (required)
  token:      Tracker API token or password (required)

git:
  url:            Repository clone URL (required only for 'run --clone')
  username:       Git username (only for 'run --clone')
  token:          Git password or token (only for 'run --clone')
  remote:         Remote name. Default: origin
  default-branch: Base branch for new ticket branches. Default: auto-detect
  branch-prefix:  Ticket branch prefix. Default: feature/

backend:
  base-url:     OpenAI-compatible API base URL. Default: https://api.openai.com/v1
  api-key:      API key (required)
  model:        Model name. Default: gpt-4o-mini
  max-examples: Max example documents per request. Default: 5

prompts:
  file:         Prompts file. Default: ~/.autodoc/prompts.md
  examples-dir: Example documents directory. Default: ~/.autodoc/examples
`

const topicPrompts = `Prompts and Examples
====================

The prompts file is Markdown split into "## " sections:

  ## system   Instructions sent as the system prompt.
  ## task     The user message template, expanded per ticket.

Template variables available in the task section:

  $TICKET        Ticket id (e.g. PROJ-123)
  $TITLE         Ticket title
  $STATUS        Ticket status name
  $DESCRIPTION   Ticket description
  $PARENT_INFO   Rendered parent-ticket block, empty when there is no parent
  $ASSIGNEE      Assignee display name, when the tracker provides one
  $TYPE          Issue type name, when the tracker provides one

Referencing a variable the ticket cannot supply is a template error — the
run fails rather than sending a prompt with holes in it.

Every *.md file in the examples directory is included (alphabetically, up
to backend.max-examples) as a formatting reference, so the backend mirrors
your house document style.

When you reject a draft with feedback, the feedback is appended to the
conversation and the document is regenerated from the original ticket
context plus every piece of feedback given so far — not as a patch on the
previous draft.
`

const topicWorkflow = `Workflow Stages
===============

autodoc doc <ticket>       context → generate → write <TICKET>.md to cwd
autodoc generate <ticket>  context → generate → write docs/.tasks/<TICKET>.md
autodoc run <ticket>       context → branch → generate → persist → commit → push

Stages:

  context    Fetch the ticket, plus its direct parent when one is declared.
             Parent fetch failures degrade to a warning.
  branch     Map the ticket to its canonical branch (prefix + upper-cased
             id), find it locally or remotely, create it from the default
             branch when absent, and put the working tree on it. A branch
             existing on both sides with different tips is a hard conflict.
  generate   Interactive draft/critique loop against the backend.
  persist    Write the accepted document under docs/.tasks/.
  commit     Commit with "docs: add <ID> task document (<title>)" and push.

The workflow is forward-only: a failure in a later stage never rolls back
an earlier one. A completed checkout stays checked out if the commit fails.

'run' operates on the git repository enclosing the current directory.
With --clone it instead clones git.url into a fresh temp workspace, the
way a clean-room run would.
`

const topicExitCodes = `Exit Codes
==========

  0  success
  1  generic error
  2  ticket not found
  3  transient network failure (retries exhausted)
  4  prompt template error
  5  generation backend quota exhausted
  6  branch conflict (local and remote tips diverged)
  7  local write failure
  8  aborted at review
  9  permission denied (tracker or git remote)
`
