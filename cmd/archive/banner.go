package main

const archiveBanner = `
   ___           __   _            
  / _ | ________/ /  (_)  _____    
 / __ |/ __/ __/ _ \/ / |/ / -_)   
/_/ |_/_/  \__/_//_/_/|___/\__/    
                                   
`
