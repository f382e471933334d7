package linear

// GraphQL documents sent to the Linear API. Kept together so the remote
// surface the tool depends on is visible in one place.

const issueFields = `
id
identifier
title
description
url
priority
dueDate
estimate
state { id name type }
assignee { id name email }
team { id key name }
labels { nodes { name } }
`

const queryViewer = `
query Viewer {
  viewer { id name email }
}`

const queryTeams = `
query Teams {
  teams(first: 250) {
    nodes {
      id
      key
      name
      states(first: 50) { nodes { id name type } }
    }
  }
}`

const queryTeamLabels = `
query TeamLabels($id: String!) {
  team(id: $id) {
    labels(first: 250) { nodes { id name } }
  }
}`

const queryUsers = `
query Users {
  users(first: 250) {
    nodes { id name email }
  }
}`

const queryIssue = `
query Issue($id: String!) {
  issue(id: $id) {
    ` + issueFields + `
    comments(last: 5) {
      nodes {
        body
        createdAt
        user { name }
      }
    }
  }
}`

const queryIssueSearch = `
query IssueSearch($query: String!, $first: Int!) {
  issueSearch(query: $query, first: $first) {
    nodes { ` + issueFields + ` }
  }
}`

const queryIssues = `
query Issues($filter: IssueFilter, $first: Int!) {
  issues(filter: $filter, first: $first) {
    nodes { ` + issueFields + ` }
  }
}`

const mutationIssueUpdate = `
mutation IssueUpdate($id: String!, $input: IssueUpdateInput!) {
  issueUpdate(id: $id, input: $input) {
    success
    issue { ` + issueFields + ` }
  }
}`

const mutationIssueCreate = `
mutation IssueCreate($input: IssueCreateInput!) {
  issueCreate(input: $input) {
    success
    issue { ` + issueFields + ` }
  }
}`

const mutationCommentCreate = `
mutation CommentCreate($input: CommentCreateInput!) {
  commentCreate(input: $input) {
    success
  }
}`
