package manifest

const siteJSON = `{
  "items": [
    {"title":"A","description":"d","slug":"s","location":"l",
     "metadata":{"updated":0,"images":["img.png"],"published":true}}
  ],
  "description":"site-desc",
  "metadata":{
    "site":{"name":"N","logo":"logo.png","created":0,"updated":0},
    "theme":{"name":"T","variables":{"hexCode":"#fff"}}
  }
}`
