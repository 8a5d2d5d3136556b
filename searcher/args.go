package searcher

// Hyperparameters for the planner

// Plies searched below the current node; cost grows by up to Width per ply
const DefaultDepth = 4

// Completions that may be queued before a worker blocks
const queueCapacity = 4
